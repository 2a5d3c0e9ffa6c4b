package middleware

import (
	"net/http"

	"studyshare/backend/common"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var (
	globalAPILimiter = rate.NewLimiter(rate.Limit(100), 200)
	criticalLimiter  = rate.NewLimiter(rate.Limit(2), 10)
)

func rateLimitHelper(c *gin.Context, limiter *rate.Limiter) {
	if !limiter.Allow() {
		common.RespErrorStr(c, http.StatusTooManyRequests, "too many requests, slow down")
		c.Abort()
		return
	}
	c.Next()
}

// GlobalAPIRateLimit caps overall API throughput for the process.
func GlobalAPIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		rateLimitHelper(c, globalAPILimiter)
	}
}

// CriticalRateLimit guards the credential endpoints against brute force.
func CriticalRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		rateLimitHelper(c, criticalLimiter)
	}
}
