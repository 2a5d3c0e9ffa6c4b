package model

import (
	"strings"

	"gorm.io/gorm"
)

// Sort modes for SearchResources.
const (
	SortLatest  = "latest"
	SortPopular = "popular"
	SortRated   = "rated"
)

// SearchFilters carries the optional catalog filters. Zero values mean
// "don't filter". Query, Subject, Branch and YearBatch match as
// case-insensitive substrings; Semester, Type and Privacy match exactly.
type SearchFilters struct {
	Query     string
	Subject   string
	Semester  string
	Type      string
	Branch    string
	YearBatch string
	Privacy   string
	Sort      string
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// SearchResources builds the filtered, sorted catalog listing. The viewer's
// read predicate is part of the query itself, so a row the viewer may not
// see never leaves the database. The free-text query matches on any of
// title, subject, tags or description.
//
// "rated" orders by the live average with no-review resources pinned to the
// bottom (their sort key is 0, made explicit with COALESCE rather than
// inherited from NULL ordering).
func SearchResources(viewer Viewer, filters SearchFilters) ([]*ResourceView, error) {
	q := resourceViewQuery().Scopes(VisibleTo(viewer))

	if filters.Query != "" {
		pattern := likePattern(filters.Query)
		q = q.Where(
			"LOWER(resources.title) LIKE ? OR LOWER(resources.subject) LIKE ? OR LOWER(resources.tags) LIKE ? OR LOWER(resources.description) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filters.Subject != "" {
		q = q.Where("LOWER(resources.subject) LIKE ?", likePattern(filters.Subject))
	}
	if filters.Semester != "" {
		q = q.Where("resources.semester = ?", filters.Semester)
	}
	if filters.Type != "" {
		q = q.Where("resources.resource_type = ?", filters.Type)
	}
	if filters.Branch != "" {
		q = q.Where("LOWER(users.branch) LIKE ?", likePattern(filters.Branch))
	}
	if filters.YearBatch != "" {
		q = q.Where("LOWER(resources.year_batch) LIKE ?", likePattern(filters.YearBatch))
	}
	if filters.Privacy != "" {
		q = q.Where("resources.privacy = ?", filters.Privacy)
	}

	q = applySort(q, filters.Sort)

	var views []*ResourceView
	err := q.Find(&views).Error
	return views, err
}

func applySort(q *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case SortPopular:
		return q.Order("resources.download_count DESC")
	case SortRated:
		return q.Order("avg_rating DESC")
	default:
		return q.Order("resources.created_at DESC")
	}
}
