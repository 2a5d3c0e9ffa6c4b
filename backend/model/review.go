package model

import (
	"math"
	"time"

	"gorm.io/gorm/clause"
)

// Review holds one user's rating of one resource. The composite unique
// index is the enforcement point for the one-review-per-pair rule; writes
// go through a single ON CONFLICT statement rather than check-then-insert.
type Review struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	ResourceID int64     `json:"resource_id" gorm:"uniqueIndex:idx_resource_user;not null"`
	UserID     int64     `json:"user_id" gorm:"uniqueIndex:idx_resource_user;not null"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewView is a review annotated with the reviewer's display name.
type ReviewView struct {
	ID           int64     `json:"id"`
	ResourceID   int64     `json:"resource_id"`
	UserID       int64     `json:"user_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	ReviewerName string    `json:"reviewer_name"`
}

// UpsertReview inserts the review or, when the (resource, user) pair already
// has one, overwrites rating and comment in place. No history is kept.
func UpsertReview(review *Review) error {
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "resource_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment"}),
	}).Create(review).Error
}

// AverageAndCount returns the mean rating rounded to one decimal place and
// the number of reviews; (0, 0) when the resource has no reviews.
func AverageAndCount(resourceID int64) (float64, int64, error) {
	var row struct {
		Avg *float64
		Cnt int64
	}
	err := DB.Model(&Review{}).
		Select("AVG(rating) AS avg, COUNT(*) AS cnt").
		Where("resource_id = ?", resourceID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.Avg == nil {
		return 0, 0, nil
	}
	return math.Round(*row.Avg*10) / 10, row.Cnt, nil
}

// ReviewsForResource lists reviews newest first with reviewer names.
func ReviewsForResource(resourceID int64) ([]*ReviewView, error) {
	var views []*ReviewView
	err := DB.Table("reviews").
		Select("reviews.id, reviews.resource_id, reviews.user_id, reviews.rating, reviews.comment, reviews.created_at, users.name AS reviewer_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.resource_id = ?", resourceID).
		Order("reviews.created_at DESC").
		Find(&views).Error
	return views, err
}

// GetUserReview returns the viewer's own review of a resource, or nil.
func GetUserReview(resourceID, userID int64) (*Review, error) {
	var review Review
	err := DB.Where("resource_id = ? AND user_id = ?", resourceID, userID).Take(&review).Error
	if err != nil {
		if IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}
