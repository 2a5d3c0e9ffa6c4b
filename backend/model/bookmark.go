package model

import (
	"time"

	"gorm.io/gorm/clause"
)

// Bookmark is a pure existence relation: one row while saved, none while
// not. The composite unique index enforces the single-row rule; the toggle
// relies on it instead of a read-then-write check.
type Bookmark struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	UserID     int64     `json:"user_id" gorm:"uniqueIndex:idx_user_resource;not null"`
	ResourceID int64     `json:"resource_id" gorm:"uniqueIndex:idx_user_resource;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToggleBookmark flips the saved state and reports the resulting state.
// Delete-first keeps the toggle a single statement per outcome; a concurrent
// duplicate insert lands on the unique index and is treated as already saved.
func ToggleBookmark(userID, resourceID int64) (bool, error) {
	res := DB.Where("user_id = ? AND resource_id = ?", userID, resourceID).Delete(&Bookmark{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	err := DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Bookmark{UserID: userID, ResourceID: resourceID}).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

func IsBookmarked(userID, resourceID int64) (bool, error) {
	var count int64
	err := DB.Model(&Bookmark{}).
		Where("user_id = ? AND resource_id = ?", userID, resourceID).
		Count(&count).Error
	return count > 0, err
}

// BookmarkedResources lists the viewer's saved resources, still filtered by
// the read predicate: a save made while eligible goes dark if the viewer
// later changes college away from a private resource's institution.
func BookmarkedResources(viewer Viewer) ([]*ResourceView, error) {
	var views []*ResourceView
	err := resourceViewQuery().
		Joins("JOIN bookmarks ON bookmarks.resource_id = resources.id").
		Where("bookmarks.user_id = ?", viewer.ID).
		Scopes(VisibleTo(viewer)).
		Order("bookmarks.created_at DESC").
		Find(&views).Error
	return views, err
}
