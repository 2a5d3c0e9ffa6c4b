package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"studyshare/backend/common"
	mcerrors "studyshare/backend/common/errors"
	"studyshare/backend/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// viewerFrom rebuilds the authenticated identity placed in the context by
// the auth middleware. Policy and query calls receive it as an explicit
// argument instead of reading ambient session state.
func viewerFrom(c *gin.Context) model.Viewer {
	return model.Viewer{
		ID:      c.GetInt64("user_id"),
		College: c.GetString("user_college"),
	}
}

// bindErrorMessage turns a binding failure into a single readable line
// naming the first offending field.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return "invalid value for field '" + strings.ToLower(fe.Field()) + "' (rule: " + fe.Tag() + ")"
	}
	return err.Error()
}

// parseIDParam reads the :id path parameter; 0 means it was invalid and a
// response has already been written.
func parseIDParam(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		common.RespErrorCode(c, http.StatusBadRequest, mcerrors.ErrInvalidParam, "invalid resource id")
		return 0
	}
	return id
}
