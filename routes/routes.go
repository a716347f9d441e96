package routes

import (
	"ps-dashboard-api/controllers"
	"ps-dashboard-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Problem Statement Dashboard API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Session management
			protected.POST("/logout", controllers.Logout)

			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Problem statements
			statements := protected.Group("/problem-statements")
			{
				statements.GET("", controllers.GetProblemStatements)
				statements.GET("/:id", controllers.GetProblemStatement)

				// Creation and mutation are department-admin operations
				statements.POST("", middleware.RequireRole("department_admin"), controllers.CreateProblemStatement)
				statements.PUT("/:id", middleware.RequireRole("department_admin"), controllers.UpdateProblemStatement)
				statements.POST("/:id/resubmit", middleware.RequireRole("department_admin"), controllers.ResubmitProblemStatement)
				statements.DELETE("/:id", middleware.RequireRole("department_admin"), controllers.DeleteProblemStatement)

				// Attachments
				statements.POST("/:id/attachments", controllers.UploadAttachment)
				statements.GET("/:id/attachments", controllers.GetAttachments)

				// Messages per problem statement
				statements.POST("/:id/messages", controllers.SendMessage)
				statements.POST("/:id/messages/read", controllers.MarkThreadRead)
			}

			// Attachments addressed directly
			attachments := protected.Group("/attachments")
			{
				attachments.GET("/:attachment_id/download", controllers.DownloadAttachment)
				attachments.DELETE("/:attachment_id", controllers.DeleteAttachment)
			}

			// Batch submission
			submissions := protected.Group("/submissions")
			{
				submissions.GET("/ready", controllers.GetReadyToSubmit)
				submissions.POST("", middleware.RequireRole("department_admin"), controllers.SubmitBatch)
			}

			// Message threads
			protected.GET("/messages", controllers.GetMessageThreads)

			// Alerts
			protected.GET("/alerts", controllers.GetAlerts)

			// Reviews
			protected.GET("/reviews", controllers.GetReviews)

			// Dashboard
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)
		}
	}
}
