package model

import (
	"time"

	"gorm.io/gorm"
)

// Privacy values for a resource.
const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

// Resource is one uploaded study material. College is snapshotted from the
// uploader at creation time. Filename is the generated on-disk name;
// OriginalFilename is what the uploader called it and is used for the
// download disposition.
type Resource struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	UserID           int64     `json:"user_id" gorm:"index;not null"`
	Title            string    `json:"title" gorm:"size:200;not null"`
	Subject          string    `json:"subject" gorm:"index;size:100;not null"`
	Semester         string    `json:"semester" gorm:"index;size:20;not null"`
	ResourceType     string    `json:"resource_type" gorm:"index;size:50;not null"`
	YearBatch        string    `json:"year_batch" gorm:"size:50;not null"`
	Description      string    `json:"description" gorm:"type:text"`
	Tags             string    `json:"tags" gorm:"size:500"`
	Privacy          string    `json:"privacy" gorm:"size:10;default:public;not null"`
	College          string    `json:"college" gorm:"index;size:200;not null"`
	Filename         string    `json:"-" gorm:"uniqueIndex;size:200;not null"`
	OriginalFilename string    `json:"original_filename" gorm:"size:255;not null"`
	FileSize         int64     `json:"file_size" gorm:"default:0"`
	DownloadCount    int64     `json:"download_count" gorm:"default:0"`
	CreatedAt        time.Time `json:"created_at"`
}

// ResourceView is a catalog row annotated with uploader info and the live
// review aggregate. It is what list, search and detail endpoints return.
type ResourceView struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Title            string    `json:"title"`
	Subject          string    `json:"subject"`
	Semester         string    `json:"semester"`
	ResourceType     string    `json:"resource_type"`
	YearBatch        string    `json:"year_batch"`
	Description      string    `json:"description"`
	Tags             string    `json:"tags"`
	Privacy          string    `json:"privacy"`
	College          string    `json:"college"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	DownloadCount    int64     `json:"download_count"`
	CreatedAt        time.Time `json:"created_at"`
	UploaderName     string    `json:"uploader_name"`
	UploaderCollege  string    `json:"uploader_college"`
	UploaderBranch   string    `json:"uploader_branch"`
	AvgRating        float64   `json:"avg_rating"`
	ReviewCount      int64     `json:"review_count"`
}

const resourceViewColumns = `resources.id, resources.user_id, resources.title,
resources.subject, resources.semester, resources.resource_type, resources.year_batch,
resources.description, resources.tags, resources.privacy, resources.college,
resources.original_filename, resources.file_size, resources.download_count,
resources.created_at,
users.name AS uploader_name, users.college AS uploader_college, users.branch AS uploader_branch,
COALESCE(ROUND((SELECT AVG(rating) FROM reviews WHERE reviews.resource_id = resources.id), 1), 0) AS avg_rating,
(SELECT COUNT(*) FROM reviews WHERE reviews.resource_id = resources.id) AS review_count`

func resourceViewQuery() *gorm.DB {
	return DB.Table("resources").
		Select(resourceViewColumns).
		Joins("JOIN users ON users.id = resources.user_id")
}

// VisibleTo narrows a resources query to rows the viewer may read:
// public, or private within the viewer's own college. Every listing query
// goes through this scope so no post-filtering is ever needed.
func VisibleTo(viewer Viewer) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("resources.privacy = ? OR resources.college = ?", PrivacyPublic, viewer.College)
	}
}

func CreateResource(resource *Resource) error {
	return DB.Create(resource).Error
}

func GetResourceByID(id int64) (*Resource, error) {
	var resource Resource
	if err := DB.First(&resource, id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// GetResourceView loads a single annotated resource regardless of
// visibility; the caller applies the policy.
func GetResourceView(id int64) (*ResourceView, error) {
	var view ResourceView
	err := resourceViewQuery().Where("resources.id = ?", id).Take(&view).Error
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// RecentVisible returns the newest resources the viewer may read.
func RecentVisible(viewer Viewer, limit int) ([]*ResourceView, error) {
	var views []*ResourceView
	err := resourceViewQuery().
		Scopes(VisibleTo(viewer)).
		Order("resources.created_at DESC").
		Limit(limit).
		Find(&views).Error
	return views, err
}

// ByUploader returns a user's own resources, private ones included.
func ByUploader(userID int64) ([]*ResourceView, error) {
	var views []*ResourceView
	err := resourceViewQuery().
		Where("resources.user_id = ?", userID).
		Order("resources.created_at DESC").
		Find(&views).Error
	return views, err
}

// UpdateMeta persists the owner-editable metadata columns. College, the
// stored file reference and the download counter are deliberately not
// assignable here.
func (resource *Resource) UpdateMeta() error {
	return DB.Model(resource).
		Select("title", "subject", "semester", "resource_type", "year_batch",
			"description", "tags", "privacy").
		Updates(resource).Error
}

// DeleteResourceCascade removes the resource together with its reviews and
// bookmarks in one transaction. The backing file is the caller's problem;
// rows go first so a failed disk delete never leaves dangling metadata.
func DeleteResourceCascade(id int64) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_id = ?", id).Delete(&Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_id = ?", id).Delete(&Bookmark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Resource{}, id).Error
	})
}

// IncrementDownloadCount bumps the counter in a single UPDATE so concurrent
// downloads cannot lose updates.
func IncrementDownloadCount(id int64) error {
	return DB.Model(&Resource{}).Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1)).Error
}

func CountPublicResources() (int64, error) {
	var count int64
	err := DB.Model(&Resource{}).Where("privacy = ?", PrivacyPublic).Count(&count).Error
	return count, err
}

func CountResourcesByUser(userID int64) (int64, error) {
	var count int64
	err := DB.Model(&Resource{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// SumDownloadsByUser totals the download counters across a user's uploads.
func SumDownloadsByUser(userID int64) (int64, error) {
	var total int64
	err := DB.Model(&Resource{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(download_count), 0)").
		Scan(&total).Error
	return total, err
}
