package handler

import (
	"net/http"
	"strings"

	"studyshare/backend/common"
	mcerrors "studyshare/backend/common/errors"
	"studyshare/backend/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type UserUpdateRequestPayload struct {
	Name     string `json:"name" binding:"required,max=100"`
	College  string `json:"college" binding:"required,max=200"`
	Branch   string `json:"branch" binding:"required,max=100"`
	Semester string `json:"semester" binding:"required,max=20"`
	Bio      string `json:"bio" binding:"max=2000"`
	// AvatarRef is a stored-file reference, not a raw path.
	AvatarRef string `json:"avatar_ref" binding:"max=200"`
	// Empty means "don't change".
	Password string `json:"password" binding:"omitempty,min=6"`
}

// GetSelf returns the profile page payload: the user, their uploads with
// aggregates (private ones included, they own them) and the total download
// count across those uploads.
func GetSelf(c *gin.Context) {
	viewer := viewerFrom(c)
	user, err := model.GetUserById(viewer.ID)
	if err != nil {
		common.RespErrorCode(c, http.StatusNotFound, mcerrors.ErrUserNotFound, "user not found")
		return
	}
	resources, err := model.ByUploader(viewer.ID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load uploads", err)
		return
	}
	totalDownloads, err := model.SumDownloadsByUser(viewer.ID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load stats", err)
		return
	}
	common.RespSuccess(c, gin.H{
		"user":            user,
		"resources":       resources,
		"total_downloads": totalDownloads,
	})
}

// UpdateSelf edits the profile. Changing college affects future uploads
// only; resources keep the college they were uploaded under.
func UpdateSelf(c *gin.Context) {
	viewer := viewerFrom(c)

	var payload UserUpdateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, mcerrors.ErrInvalidParam, bindErrorMessage(err))
		return
	}

	user, err := model.GetUserById(viewer.ID)
	if err != nil {
		common.RespErrorCode(c, http.StatusNotFound, mcerrors.ErrUserNotFound, "user not found")
		return
	}

	user.Name = strings.TrimSpace(payload.Name)
	user.College = strings.TrimSpace(payload.College)
	user.Branch = strings.TrimSpace(payload.Branch)
	user.Semester = strings.TrimSpace(payload.Semester)
	user.Bio = strings.TrimSpace(payload.Bio)
	user.AvatarRef = strings.TrimSpace(payload.AvatarRef)

	updatePassword := payload.Password != ""
	if updatePassword {
		user.Password = payload.Password
	}
	if err := user.Update(updatePassword); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to update profile", err)
		return
	}

	// The session caches name and college; refresh it so the next request
	// sees the new identity. Bearer tokens keep the old college until they
	// expire.
	session := sessions.Default(c)
	if session.Get("id") != nil {
		session.Set("name", user.Name)
		session.Set("college", user.College)
		if err := session.Save(); err != nil {
			common.RespError(c, http.StatusInternalServerError, "failed to refresh session", err)
			return
		}
	}
	common.RespSuccessWithMsg(c, "profile updated", user)
}
