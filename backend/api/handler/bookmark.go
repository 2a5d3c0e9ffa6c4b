package handler

import (
	"net/http"

	"studyshare/backend/common"
	mcerrors "studyshare/backend/common/errors"
	"studyshare/backend/model"

	"github.com/gin-gonic/gin"
)

// ToggleBookmark flips the viewer's saved state for a resource.
func ToggleBookmark(c *gin.Context) {
	id := parseIDParam(c)
	if id == 0 {
		return
	}
	viewer := viewerFrom(c)

	if _, err := model.GetResourceByID(id); err != nil {
		if model.IsRecordNotFound(err) {
			common.RespErrorCode(c, http.StatusNotFound, mcerrors.ErrResourceNotFound, "resource not found")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "failed to load resource", err)
		return
	}

	bookmarked, err := model.ToggleBookmark(viewer.ID, id)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to toggle bookmark", err)
		return
	}
	msg := "bookmark removed"
	if bookmarked {
		msg = "resource bookmarked"
	}
	common.RespSuccessWithMsg(c, msg, gin.H{"bookmarked": bookmarked})
}

// GetBookmarks lists the viewer's saved resources, read-filtered like every
// other listing.
func GetBookmarks(c *gin.Context) {
	viewer := viewerFrom(c)
	views, err := model.BookmarkedResources(viewer)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to list bookmarks", err)
		return
	}
	common.RespSuccess(c, views)
}
