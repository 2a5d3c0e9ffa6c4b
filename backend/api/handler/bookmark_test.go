package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	mcerrors "studyshare/backend/common/errors"
	"studyshare/backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleBookmarkEndpoint(t *testing.T) {
	router := setupTestServer(t)
	_, ownerToken := createUserWithToken(t, "owner", "MIT")
	_, viewerToken := createUserWithToken(t, "viewer", "MIT")

	resource := mustUpload(t, router, ownerToken, "Saved Notes", model.PrivacyPublic)
	path := "/api/resources/" + itoa(resource.ID) + "/bookmark"

	w := doJSON(t, router, http.MethodPost, path, viewerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "resource bookmarked", env.Message)

	var state struct {
		Bookmarked bool `json:"bookmarked"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.True(t, state.Bookmarked)

	// The saved list now contains it.
	w = doJSON(t, router, http.MethodGet, "/api/bookmarks", viewerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var views []*model.ResourceView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &views))
	require.Len(t, views, 1)
	assert.Equal(t, resource.ID, views[0].ID)

	// Toggling again removes it.
	w = doJSON(t, router, http.MethodPost, path, viewerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	assert.Equal(t, "bookmark removed", env.Message)

	w = doJSON(t, router, http.MethodGet, "/api/bookmarks", viewerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &views))
	assert.Empty(t, views)
}

func TestToggleBookmark_UnknownResource(t *testing.T) {
	router := setupTestServer(t)
	_, token := createUserWithToken(t, "viewer", "MIT")

	w := doJSON(t, router, http.MethodPost, "/api/resources/424242/bookmark", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, mcerrors.ErrResourceNotFound, decodeEnvelope(t, w).Code)
}
