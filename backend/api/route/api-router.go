package route

import (
	"studyshare/backend/api/handler"
	"studyshare/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(route *gin.Engine) {
	apiRouter := route.Group("/api")
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		apiRouter.GET("/status", handler.GetStatus)

		authRoutes := apiRouter.Group("/auth")
		{
			authRoutes.POST("/register", middleware.CriticalRateLimit(), handler.Register)
			authRoutes.POST("/login", middleware.CriticalRateLimit(), handler.Login)
			authRoutes.GET("/logout", handler.Logout)
		}

		// Everything below carries data and requires an identity.
		authed := apiRouter.Group("/")
		authed.Use(middleware.UserAuth())
		{
			authed.GET("/home", handler.GetHome)
			authed.GET("/search", handler.SearchResources)
			authed.GET("/bookmarks", handler.GetBookmarks)

			userRoute := authed.Group("/user")
			{
				userRoute.GET("/self", handler.GetSelf)
				userRoute.PUT("/self", handler.UpdateSelf)
			}

			resourceRoute := authed.Group("/resources")
			{
				resourceRoute.GET("", handler.ListResources)
				resourceRoute.POST("", handler.UploadResource)
				resourceRoute.GET("/:id", handler.GetResource)
				resourceRoute.PUT("/:id", handler.UpdateResource)
				resourceRoute.DELETE("/:id", handler.DeleteResource)
				resourceRoute.GET("/:id/download", handler.DownloadResource)
				resourceRoute.GET("/:id/preview", handler.PreviewResource)
				resourceRoute.POST("/:id/reviews", handler.SubmitReview)
				resourceRoute.POST("/:id/bookmark", handler.ToggleBookmark)
			}
		}
	}
}
