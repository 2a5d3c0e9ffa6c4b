package service

import (
	"testing"

	"studyshare/backend/model"

	"github.com/stretchr/testify/assert"
)

func TestCanView(t *testing.T) {
	tests := []struct {
		name     string
		privacy  string
		college  string
		viewer   model.Viewer
		expected bool
	}{
		{"public same college", model.PrivacyPublic, "MIT", model.Viewer{ID: 2, College: "MIT"}, true},
		{"public other college", model.PrivacyPublic, "MIT", model.Viewer{ID: 2, College: "Stanford"}, true},
		{"private same college", model.PrivacyPrivate, "MIT", model.Viewer{ID: 2, College: "MIT"}, true},
		{"private other college", model.PrivacyPrivate, "MIT", model.Viewer{ID: 2, College: "Stanford"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resource := &model.Resource{UserID: 1, Privacy: tt.privacy, College: tt.college}
			assert.Equal(t, tt.expected, CanView(resource, tt.viewer))
		})
	}
}

func TestCanMutate_OwnershipIsTheOnlyGate(t *testing.T) {
	resource := &model.Resource{UserID: 7, Privacy: model.PrivacyPrivate, College: "MIT"}

	assert.True(t, CanMutate(resource, model.Viewer{ID: 7, College: "Stanford"}))
	// Same college does not grant mutation rights.
	assert.False(t, CanMutate(resource, model.Viewer{ID: 8, College: "MIT"}))
	// Public does not either.
	public := &model.Resource{UserID: 7, Privacy: model.PrivacyPublic, College: "MIT"}
	assert.False(t, CanMutate(public, model.Viewer{ID: 8, College: "MIT"}))
}

func TestViewerCollegeComparesAgainstResourceSnapshot(t *testing.T) {
	// The check uses the college stored on the resource, not the uploader's
	// current profile value.
	resource := &model.Resource{UserID: 1, Privacy: model.PrivacyPrivate, College: "Old College"}
	assert.True(t, CanView(resource, model.Viewer{ID: 2, College: "Old College"}))
	assert.False(t, CanView(resource, model.Viewer{ID: 2, College: "New College"}))
}
