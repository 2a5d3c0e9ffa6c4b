package middleware

import (
	"net/http"
	"strings"

	"studyshare/backend/common"
	mcerrors "studyshare/backend/common/errors"
	"studyshare/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// authHelper resolves the requester's identity from the session cookie, or
// from a Bearer token when no session exists. On success it stores the
// identity in the request context; handlers pass it on explicitly from
// there, nothing downstream reads the session again.
func authHelper(c *gin.Context) {
	session := sessions.Default(c)
	id := session.Get("id")
	name := session.Get("name")
	college := session.Get("college")
	authByToken := false

	if id == nil {
		tokenString := bearerToken(c)
		if tokenString == "" {
			common.RespErrorCode(c, http.StatusUnauthorized, mcerrors.ErrNotLoggedIn, "not logged in")
			c.Abort()
			return
		}
		claims, err := service.ValidateToken(tokenString)
		if err != nil {
			common.RespErrorCode(c, http.StatusUnauthorized, mcerrors.ErrNotLoggedIn, "invalid token")
			c.Abort()
			return
		}
		if common.RedisEnabled {
			blacklisted, _ := common.RDB.Exists(c, "jwt:blacklist:"+tokenString).Result()
			if blacklisted > 0 {
				common.RespErrorCode(c, http.StatusUnauthorized, mcerrors.ErrNotLoggedIn, "token has been invalidated")
				c.Abort()
				return
			}
		}
		id = claims.UserID
		name = claims.Name
		college = claims.College
		authByToken = true
	}

	userID, okID := id.(int64)
	userName, okName := name.(string)
	userCollege, okCollege := college.(string)
	if !okID || !okName || !okCollege {
		// Stale or corrupt session payload: drop it and force a fresh login.
		session.Clear()
		_ = session.Save()
		common.RespErrorCode(c, http.StatusUnauthorized, mcerrors.ErrNotLoggedIn, "session expired, please log in again")
		c.Abort()
		return
	}

	c.Set("user_id", userID)
	c.Set("user_name", userName)
	c.Set("user_college", userCollege)
	c.Set("authByToken", authByToken)
	c.Next()
}

func bearerToken(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return authHeader
}

// UserAuth guards every data-bearing route; anonymous access exists only on
// the auth and status endpoints.
func UserAuth() func(c *gin.Context) {
	return func(c *gin.Context) {
		authHelper(c)
	}
}
