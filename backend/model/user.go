package model

import (
	"errors"
	"strings"
	"time"

	"studyshare/backend/common"

	"gorm.io/gorm"
)

// User is a registered student. Email is the login key and is stored
// lowercased. College on the user is a profile attribute only; resources
// snapshot it at upload time and never follow later edits.
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Password  string    `json:"-" gorm:"size:100;not null"`
	College   string    `json:"college" gorm:"index;size:200;not null"`
	Branch    string    `json:"branch" gorm:"size:100;not null"`
	Semester  string    `json:"semester" gorm:"size:20;not null"`
	Bio       string    `json:"bio" gorm:"type:text"`
	AvatarRef string    `json:"avatar_ref" gorm:"size:200"`
	CreatedAt time.Time `json:"created_at"`
}

// Insert hashes the plaintext password and creates the user.
func (user *User) Insert() error {
	if user.Password == "" {
		return errors.New("password is empty")
	}
	hashed, err := common.Password2Hash(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return DB.Create(user).Error
}

// Update persists profile fields. The password is only re-hashed when
// updatePassword is set.
func (user *User) Update(updatePassword bool) error {
	if updatePassword {
		hashed, err := common.Password2Hash(user.Password)
		if err != nil {
			return err
		}
		user.Password = hashed
	}
	return DB.Model(user).
		Select("name", "college", "branch", "semester", "bio", "avatar_ref", "password").
		Updates(user).Error
}

// ValidateAndFill checks the credentials and, on success, replaces the
// receiver with the stored record.
func (user *User) ValidateAndFill() error {
	if user.Email == "" || user.Password == "" {
		return errors.New("email or password is empty")
	}
	var found User
	err := DB.Where("email = ?", strings.ToLower(strings.TrimSpace(user.Email))).First(&found).Error
	if err != nil || !common.ValidatePasswordAndHash(user.Password, found.Password) {
		return errors.New("invalid email or password")
	}
	*user = found
	return nil
}

func GetUserById(id int64) (*User, error) {
	if id == 0 {
		return nil, errors.New("id is empty")
	}
	var user User
	if err := DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func IsEmailAlreadyTaken(email string) bool {
	var count int64
	err := DB.Model(&User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return err == nil && count > 0
}

// IsRecordNotFound reports whether err means the row does not exist, which
// handlers map to a 404.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
