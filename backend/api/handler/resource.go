package handler

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"studyshare/backend/common"
	mcerrors "studyshare/backend/common/errors"
	"studyshare/backend/model"
	"studyshare/backend/service"

	"github.com/gin-gonic/gin"
)

type resourceMetaPayload struct {
	Title        string `form:"title" json:"title" binding:"required,max=200"`
	Subject      string `form:"subject" json:"subject" binding:"required,max=100"`
	Semester     string `form:"semester" json:"semester" binding:"required,max=20"`
	ResourceType string `form:"resource_type" json:"resource_type" binding:"required,max=50"`
	YearBatch    string `form:"year_batch" json:"year_batch" binding:"required,max=50"`
	Description  string `form:"description" json:"description" binding:"max=5000"`
	Tags         string `form:"tags" json:"tags" binding:"max=500"`
	Privacy      string `form:"privacy" json:"privacy" binding:"omitempty,oneof=public private"`
}

// UploadResource accepts a multipart upload. Validation happens before
// anything is written; the file goes to disk first and the metadata row
// second, so a failure can orphan a file but never a row.
func UploadResource(c *gin.Context) {
	viewer := viewerFrom(c)

	var payload resourceMetaPayload
	if err := c.ShouldBind(&payload); err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, mcerrors.ErrInvalidParam, bindErrorMessage(err))
		return
	}
	if payload.Privacy == "" {
		payload.Privacy = model.PrivacyPublic
	}

	file, err := c.FormFile("file")
	if err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, mcerrors.ErrFileMissing, "please select a file to upload")
		return
	}
	if file.Size > common.MaxUploadBytes {
		common.RespErrorCode(c, http.StatusBadRequest, mcerrors.ErrFileTooLarge, "file exceeds the upload size limit")
		return
	}
	if !service.IsAllowedFile(file.Filename) {
		common.RespErrorCode(c, http.StatusBadRequest, mcerrors.ErrFileTypeNotAllowed,
			"file type not allowed, allowed: "+service.AllowedExtensionList())
		return
	}

	storedName, size, err := service.SaveUploadedFile(file)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to store file", err)
		return
	}

	resource := &model.Resource{
		UserID:           viewer.ID,
		Title:            strings.TrimSpace(payload.Title),
		Subject:          strings.TrimSpace(payload.Subject),
		Semester:         strings.TrimSpace(payload.Semester),
		ResourceType:     strings.TrimSpace(payload.ResourceType),
		YearBatch:        strings.TrimSpace(payload.YearBatch),
		Description:      strings.TrimSpace(payload.Description),
		Tags:             strings.TrimSpace(payload.Tags),
		Privacy:          payload.Privacy,
		College:          viewer.College,
		Filename:         storedName,
		OriginalFilename: file.Filename,
		FileSize:         size,
	}
	if err := model.CreateResource(resource); err != nil {
		if cleanupErr := service.DeleteStoredFile(storedName); cleanupErr != nil {
			common.SysError("failed to clean up stored file " + storedName + ": " + cleanupErr.Error())
		}
		common.RespError(c, http.StatusInternalServerError, "failed to save resource", err)
		return
	}
	common.RespSuccessWithMsg(c, "resource uploaded successfully", resource)
}

// GetHome returns the landing feed: the newest visible resources plus a few
// counters.
func GetHome(c *gin.Context) {
	viewer := viewerFrom(c)
	views, err := model.RecentVisible(viewer, common.HomeFeedSize)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load feed", err)
		return
	}
	publicCount, err := model.CountPublicResources()
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load stats", err)
		return
	}
	ownCount, err := model.CountResourcesByUser(viewer.ID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load stats", err)
		return
	}
	common.RespSuccess(c, gin.H{
		"resources":    views,
		"public_count": publicCount,
		"user_uploads": ownCount,
	})
}

// ListResources is the machine-facing listing: same read predicate as every
// other catalog query, newest first.
func ListResources(c *gin.Context) {
	viewer := viewerFrom(c)
	views, err := model.RecentVisible(viewer, common.APIFeedSize)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to list resources", err)
		return
	}
	common.RespSuccess(c, views)
}

// GetResource is the narrative detail endpoint. A read the policy denies
// redirects to the home feed with a notice instead of returning an error
// status; the binary endpoints below do the opposite.
func GetResource(c *gin.Context) {
	id := parseIDParam(c)
	if id == 0 {
		return
	}
	viewer := viewerFrom(c)

	resource, err := model.GetResourceByID(id)
	if err != nil {
		if model.IsRecordNotFound(err) {
			common.RespErrorCode(c, http.StatusNotFound, mcerrors.ErrResourceNotFound, "resource not found")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "failed to load resource", err)
		return
	}
	if !service.CanView(resource, viewer) {
		notice := "this resource is private and only available to " + resource.College + " students"
		c.Redirect(http.StatusFound, "/home?notice="+url.QueryEscape(notice))
		return
	}

	view, err := model.GetResourceView(id)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load resource", err)
		return
	}
	reviews, err := model.ReviewsForResource(id)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load reviews", err)
		return
	}
	userReview, err := model.GetUserReview(id, viewer.ID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load reviews", err)
		return
	}
	bookmarked, err := model.IsBookmarked(viewer.ID, id)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load bookmark state", err)
		return
	}
	common.RespSuccess(c, gin.H{
		"resource":      view,
		"reviews":       reviews,
		"user_review":   userReview,
		"is_bookmarked": bookmarked,
	})
}

// loadServableResource factors the shared 404/403 path of download and
// preview. It returns nil after writing the response when access is denied.
func loadServableResource(c *gin.Context) *model.Resource {
	id := parseIDParam(c)
	if id == 0 {
		return nil
	}
	resource, err := model.GetResourceByID(id)
	if err != nil {
		if model.IsRecordNotFound(err) {
			common.RespErrorCode(c, http.StatusNotFound, mcerrors.ErrResourceNotFound, "resource not found")
			return nil
		}
		common.RespError(c, http.StatusInternalServerError, "failed to load resource", err)
		return nil
	}
	if !service.CanView(resource, viewerFrom(c)) {
		common.RespErrorCode(c, http.StatusForbidden, mcerrors.ErrForbidden, "you do not have access to this resource")
		return nil
	}
	return resource
}

func DownloadResource(c *gin.Context) {
	resource := loadServableResource(c)
	if resource == nil {
		return
	}
	fullPath, err := service.ResolveStoredPath(resource.Filename)
	if err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid file path", err)
		return
	}
	if _, err := os.Stat(fullPath); err != nil {
		common.RespErrorCode(c, http.StatusNotFound, mcerrors.ErrFileMissing, "stored file is missing")
		return
	}
	// Counted only after access and file existence have been established.
	if err := model.IncrementDownloadCount(resource.ID); err != nil {
		common.SysError("failed to increment download count: " + err.Error())
	}
	c.FileAttachment(fullPath, resource.OriginalFilename)
}

func PreviewResource(c *gin.Context) {
	resource := loadServableResource(c)
	if resource == nil {
		return
	}
	fullPath, err := service.ResolveStoredPath(resource.Filename)
	if err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid file path", err)
		return
	}
	if _, err := os.Stat(fullPath); err != nil {
		common.RespErrorCode(c, http.StatusNotFound, mcerrors.ErrFileMissing, "stored file is missing")
		return
	}
	c.File(fullPath)
}

// loadOwnedResource factors the shared 404/403 path of the mutation
// endpoints. Ownership is the only gate; visibility does not matter here.
func loadOwnedResource(c *gin.Context) *model.Resource {
	id := parseIDParam(c)
	if id == 0 {
		return nil
	}
	resource, err := model.GetResourceByID(id)
	if err != nil {
		if model.IsRecordNotFound(err) {
			common.RespErrorCode(c, http.StatusNotFound, mcerrors.ErrResourceNotFound, "resource not found")
			return nil
		}
		common.RespError(c, http.StatusInternalServerError, "failed to load resource", err)
		return nil
	}
	if !service.CanMutate(resource, viewerFrom(c)) {
		common.RespErrorCode(c, http.StatusForbidden, mcerrors.ErrNotOwner, "only the uploader can modify this resource")
		return nil
	}
	return resource
}

// UpdateResource edits metadata only. The snapshotted college, the stored
// file and the download counter are untouchable through this endpoint.
func UpdateResource(c *gin.Context) {
	resource := loadOwnedResource(c)
	if resource == nil {
		return
	}

	var payload resourceMetaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, mcerrors.ErrInvalidParam, bindErrorMessage(err))
		return
	}
	if payload.Privacy == "" {
		payload.Privacy = model.PrivacyPublic
	}

	resource.Title = strings.TrimSpace(payload.Title)
	resource.Subject = strings.TrimSpace(payload.Subject)
	resource.Semester = strings.TrimSpace(payload.Semester)
	resource.ResourceType = strings.TrimSpace(payload.ResourceType)
	resource.YearBatch = strings.TrimSpace(payload.YearBatch)
	resource.Description = strings.TrimSpace(payload.Description)
	resource.Tags = strings.TrimSpace(payload.Tags)
	resource.Privacy = payload.Privacy

	if err := resource.UpdateMeta(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to update resource", err)
		return
	}
	common.RespSuccessWithMsg(c, "resource updated successfully", resource)
}

// DeleteResource removes the metadata row with its reviews and bookmarks,
// then the backing file. A failed disk delete is logged, not surfaced.
func DeleteResource(c *gin.Context) {
	resource := loadOwnedResource(c)
	if resource == nil {
		return
	}
	if err := model.DeleteResourceCascade(resource.ID); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to delete resource", err)
		return
	}
	if err := service.DeleteStoredFile(resource.Filename); err != nil {
		common.SysError("failed to delete stored file " + resource.Filename + ": " + err.Error())
	}
	common.RespSuccessStr(c, "resource deleted")
}
