package route

import (
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// setWebRouter serves the built frontend. The NoRoute SPA fallback lives in
// main so it can distinguish /api paths.
func setWebRouter(route *gin.Engine) {
	route.Use(static.Serve("/", static.LocalFile("./web/dist", false)))
}
