package handler

import (
	"net/http"

	"studyshare/backend/common"
	mcerrors "studyshare/backend/common/errors"
	"studyshare/backend/model"

	"github.com/gin-gonic/gin"
)

type reviewPayload struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"max=2000"`
}

// SubmitReview records the viewer's rating of a resource. A resubmission by
// the same user overwrites the previous rating and comment in place; the
// write is a single upsert statement, the unique (resource, user) index is
// what actually enforces the one-review rule.
func SubmitReview(c *gin.Context) {
	id := parseIDParam(c)
	if id == 0 {
		return
	}
	viewer := viewerFrom(c)

	var payload reviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, mcerrors.ErrInvalidRating, "please provide a valid rating (1-5)")
		return
	}
	if payload.Rating < 1 || payload.Rating > 5 {
		common.RespErrorCode(c, http.StatusBadRequest, mcerrors.ErrInvalidRating, "please provide a valid rating (1-5)")
		return
	}

	if _, err := model.GetResourceByID(id); err != nil {
		if model.IsRecordNotFound(err) {
			common.RespErrorCode(c, http.StatusNotFound, mcerrors.ErrResourceNotFound, "resource not found")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "failed to load resource", err)
		return
	}

	review := &model.Review{
		ResourceID: id,
		UserID:     viewer.ID,
		Rating:     payload.Rating,
		Comment:    payload.Comment,
	}
	if err := model.UpsertReview(review); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to save review", err)
		return
	}

	avg, count, err := model.AverageAndCount(id)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load rating", err)
		return
	}
	common.RespSuccessWithMsg(c, "review saved", gin.H{
		"avg_rating":   avg,
		"review_count": count,
	})
}
