package handler

import (
	"net/http"
	"strings"

	"studyshare/backend/common"
	mcerrors "studyshare/backend/common/errors"
	"studyshare/backend/model"

	"github.com/gin-gonic/gin"
)

// SearchResources runs the filtered catalog query. All filters are optional;
// the sort mode defaults to latest.
func SearchResources(c *gin.Context) {
	viewer := viewerFrom(c)

	filters := model.SearchFilters{
		Query:     strings.TrimSpace(c.Query("q")),
		Subject:   strings.TrimSpace(c.Query("subject")),
		Semester:  strings.TrimSpace(c.Query("semester")),
		Type:      strings.TrimSpace(c.Query("type")),
		Branch:    strings.TrimSpace(c.Query("branch")),
		YearBatch: strings.TrimSpace(c.Query("year_batch")),
		Privacy:   strings.TrimSpace(c.Query("privacy")),
		Sort:      c.DefaultQuery("sort", model.SortLatest),
	}

	switch filters.Privacy {
	case "", model.PrivacyPublic, model.PrivacyPrivate:
	default:
		common.RespErrorCode(c, http.StatusBadRequest, mcerrors.ErrInvalidParam, "privacy must be public or private")
		return
	}
	switch filters.Sort {
	case model.SortLatest, model.SortPopular, model.SortRated:
	default:
		filters.Sort = model.SortLatest
	}

	views, err := model.SearchResources(viewer, filters)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "search failed", err)
		return
	}
	common.RespSuccess(c, views)
}
