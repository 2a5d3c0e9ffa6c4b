package handler

import (
	"net/http"
	"strings"
	"time"

	"studyshare/backend/common"
	mcerrors "studyshare/backend/common/errors"
	"studyshare/backend/model"
	"studyshare/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type RegisterRequestPayload struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	College  string `json:"college" binding:"required,max=200"`
	Branch   string `json:"branch" binding:"required,max=100"`
	Semester string `json:"semester" binding:"required,max=20"`
	Bio      string `json:"bio" binding:"max=2000"`
}

type LoginRequestPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// authPayload is what login and register hand back: the user plus an API
// token for non-browser clients. Browser clients ride on the session cookie.
type authPayload struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func Register(c *gin.Context) {
	var payload RegisterRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, mcerrors.ErrInvalidParam, bindErrorMessage(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if model.IsEmailAlreadyTaken(email) {
		common.RespErrorCode(c, http.StatusBadRequest, mcerrors.ErrEmailTaken, "email already registered, please log in")
		return
	}

	user := &model.User{
		Name:     strings.TrimSpace(payload.Name),
		Email:    email,
		Password: payload.Password,
		College:  strings.TrimSpace(payload.College),
		Branch:   strings.TrimSpace(payload.Branch),
		Semester: strings.TrimSpace(payload.Semester),
		Bio:      strings.TrimSpace(payload.Bio),
	}
	if err := user.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to register", err)
		return
	}

	if err := establishSession(c, user); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to save session", err)
		return
	}
	token, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}
	common.RespSuccessWithMsg(c, "welcome to StudyShare, "+user.Name+"!", authPayload{User: user, Token: token})
}

func Login(c *gin.Context) {
	var payload LoginRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, mcerrors.ErrEmptyCredentials, bindErrorMessage(err))
		return
	}

	user := &model.User{Email: payload.Email, Password: payload.Password}
	if err := user.ValidateAndFill(); err != nil {
		common.RespErrorCode(c, http.StatusUnauthorized, mcerrors.ErrInvalidCredentials, "invalid email or password")
		return
	}

	if err := establishSession(c, user); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to save session", err)
		return
	}
	token, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}
	common.RespSuccessWithMsg(c, "welcome back, "+user.Name+"!", authPayload{User: user, Token: token})
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to clear session", err)
		return
	}

	// Bearer clients: blacklist the presented token until it would have
	// expired anyway.
	if common.RedisEnabled {
		authHeader := c.Request.Header.Get("Authorization")
		if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
			common.RDB.Set(c, "jwt:blacklist:"+parts[1], "1", 24*time.Hour)
		}
	}
	common.RespSuccessStr(c, "you have been logged out")
}

// establishSession records the identity the auth middleware will trust on
// subsequent requests. College is cached here and refreshed on profile edit.
func establishSession(c *gin.Context, user *model.User) error {
	session := sessions.Default(c)
	session.Set("id", user.ID)
	session.Set("name", user.Name)
	session.Set("college", user.College)
	return session.Save()
}
