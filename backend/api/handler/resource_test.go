package handler_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"studyshare/backend/common"
	mcerrors "studyshare/backend/common/errors"
	"studyshare/backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadResource(t *testing.T) {
	router := setupTestServer(t)
	uploader, token := createUserWithToken(t, "uploader", "MIT")

	resource := mustUpload(t, router, token, "Graph Notes", model.PrivacyPublic)
	assert.Equal(t, uploader.ID, resource.UserID)
	assert.Equal(t, "MIT", resource.College)
	assert.Equal(t, "Graph Notes.pdf", resource.OriginalFilename)
	assert.NotEqual(t, resource.OriginalFilename, resource.Filename)

	_, err := os.Stat(filepath.Join(common.UploadPath, resource.Filename))
	assert.NoError(t, err)
}

func TestUploadResource_RejectsDisallowedExtension(t *testing.T) {
	router := setupTestServer(t)
	_, token := createUserWithToken(t, "uploader", "MIT")

	w := uploadFile(t, router, token, "Malware", model.PrivacyPublic, "payload.exe", []byte("MZ"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, mcerrors.ErrFileTypeNotAllowed, decodeEnvelope(t, w).Code)

	// Rejection happens before any write: no row, no file.
	var count int64
	require.NoError(t, model.DB.Model(&model.Resource{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	entries, err := os.ReadDir(common.UploadPath)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPrivateResource_CrossCollegeAccess(t *testing.T) {
	router := setupTestServer(t)
	_, ownerToken := createUserWithToken(t, "owner", "College A")
	_, outsiderToken := createUserWithToken(t, "outsider", "College B")
	_, peerToken := createUserWithToken(t, "peer", "College A")

	resource := mustUpload(t, router, ownerToken, "Secret Notes", model.PrivacyPrivate)
	idPath := "/api/resources/" + itoa(resource.ID)

	// Detail view redirects outsiders to the home feed with a notice.
	w := doJSON(t, router, http.MethodGet, idPath, outsiderToken, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/home?notice=")

	// The binary endpoints return a hard 403 instead.
	w = doJSON(t, router, http.MethodGet, idPath+"/download", outsiderToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, mcerrors.ErrForbidden, decodeEnvelope(t, w).Code)

	w = doJSON(t, router, http.MethodGet, idPath+"/preview", outsiderToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A same-college viewer gets everything.
	w = doJSON(t, router, http.MethodGet, idPath, peerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, idPath+"/download", peerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Secret Notes.pdf")
}

func TestDownloadIncrementsCount(t *testing.T) {
	router := setupTestServer(t)
	_, token := createUserWithToken(t, "owner", "MIT")
	resource := mustUpload(t, router, token, "Counted Notes", model.PrivacyPublic)
	idPath := "/api/resources/" + itoa(resource.ID)

	for i := 0; i < 2; i++ {
		w := doJSON(t, router, http.MethodGet, idPath+"/download", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	// Preview does not count.
	w := doJSON(t, router, http.MethodGet, idPath+"/preview", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := model.GetResourceByID(resource.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.DownloadCount)
}

func TestUpdateResource_OwnerOnly(t *testing.T) {
	router := setupTestServer(t)
	_, ownerToken := createUserWithToken(t, "owner", "MIT")
	_, otherToken := createUserWithToken(t, "other", "MIT")

	resource := mustUpload(t, router, ownerToken, "Draft Notes", model.PrivacyPublic)
	idPath := "/api/resources/" + itoa(resource.ID)
	update := map[string]string{
		"title":         "Final Notes",
		"subject":       "Data Structures",
		"semester":      "5",
		"resource_type": "notes",
		"year_batch":    "2024",
		"privacy":       "private",
	}

	// Same college is not enough; only the uploader may edit.
	w := doJSON(t, router, http.MethodPut, idPath, otherToken, update)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, mcerrors.ErrNotOwner, decodeEnvelope(t, w).Code)

	w = doJSON(t, router, http.MethodPut, idPath, ownerToken, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := model.GetResourceByID(resource.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final Notes", stored.Title)
	assert.Equal(t, model.PrivacyPrivate, stored.Privacy)
}

func TestDeleteResource_RemovesRowAndFile(t *testing.T) {
	router := setupTestServer(t)
	_, ownerToken := createUserWithToken(t, "owner", "MIT")
	_, otherToken := createUserWithToken(t, "other", "MIT")

	resource := mustUpload(t, router, ownerToken, "Doomed Notes", model.PrivacyPublic)
	idPath := "/api/resources/" + itoa(resource.ID)

	w := doJSON(t, router, http.MethodDelete, idPath, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodDelete, idPath, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := model.GetResourceByID(resource.ID)
	assert.True(t, model.IsRecordNotFound(err))
	_, err = os.Stat(filepath.Join(common.UploadPath, resource.Filename))
	assert.True(t, os.IsNotExist(err))

	w = doJSON(t, router, http.MethodGet, idPath, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, mcerrors.ErrResourceNotFound, decodeEnvelope(t, w).Code)
}

func TestGetResource_InvalidID(t *testing.T) {
	router := setupTestServer(t)
	_, token := createUserWithToken(t, "viewer", "MIT")

	w := doJSON(t, router, http.MethodGet, "/api/resources/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, mcerrors.ErrInvalidParam, decodeEnvelope(t, w).Code)

	w = doJSON(t, router, http.MethodGet, "/api/resources/999999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
