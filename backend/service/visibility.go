package service

import (
	"studyshare/backend/model"
)

// CanView decides read/download/preview eligibility: public resources are
// open to every authenticated user, private ones only to the uploading
// resource's college. The college on the resource is the snapshot taken at
// upload time, not the uploader's current profile value.
func CanView(resource *model.Resource, viewer model.Viewer) bool {
	return resource.Privacy == model.PrivacyPublic || resource.College == viewer.College
}

// CanMutate decides edit/delete eligibility. Ownership is the sole gate;
// privacy and college are irrelevant and there is no admin override.
func CanMutate(resource *model.Resource, viewer model.Viewer) bool {
	return resource.UserID == viewer.ID
}
