package handler

import (
	"net/http"

	"studyshare/backend/common"
	"studyshare/backend/model"

	"github.com/gin-gonic/gin"
)

// GetStatus is the unauthenticated landing endpoint.
func GetStatus(c *gin.Context) {
	publicCount, err := model.CountPublicResources()
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load status", err)
		return
	}
	common.RespSuccess(c, gin.H{
		"system_name":  common.SystemName,
		"version":      common.Version,
		"public_count": publicCount,
	})
}
