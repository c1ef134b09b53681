package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/teamhub-dev/teamhub/internal/handlers"
	"github.com/teamhub-dev/teamhub/internal/middleware"
	"github.com/teamhub-dev/teamhub/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.RegisterStudent)
			auth.POST("/login", handlers.LoginStudent)
			auth.POST("/logout", handlers.LogoutStudent)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		teams := api.Group("/teams", middleware.AuthMiddleware())
		{
			teams.POST("", handlers.CreateTeam)
			teams.POST("/join", handlers.JoinTeam)
			teams.GET("/mine", handlers.GetMyTeam)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.GET("", handlers.GetProject)
			projects.PUT("", handlers.SaveProject)
		}

		logs := api.Group("/logs", middleware.AuthMiddleware())
		{
			logs.POST("", handlers.CreateWorkLog)
			logs.GET("", handlers.ListWorkLogs)
			logs.PUT("/:log_id", handlers.UpdateWorkLog)
			logs.DELETE("/:log_id", handlers.DeleteWorkLog)
		}

		reviews := api.Group("/reviews", middleware.AuthMiddleware())
		{
			reviews.GET("", handlers.ListReviews)
			reviews.POST("/:review_id/attachments", handlers.AddAttachment)
		}

		api.DELETE("/attachments/:attachment_id", middleware.AuthMiddleware(), handlers.DeleteAttachment)
		api.GET("/templates", middleware.AuthMiddleware(), handlers.ListTemplates)
	}

	return r
}
