package routes

import (
	"github.com/wyndale/Green-Roots-sub001/controllers"
	"github.com/wyndale/Green-Roots-sub001/middleware"
	"github.com/wyndale/Green-Roots-sub001/models"

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
					"message": "Green Roots API is running",
				})
			})

			// Lookup data for registration and submission forms
			public.GET("/barangays", controllers.GetBarangays)
			public.GET("/planting-sites", controllers.GetPlantingSites)
			public.GET("/leaderboard", controllers.GetLeaderboard)
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/counter", controllers.GetNotificationCounter)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}

			// Citizen submissions
			submissions := protected.Group("/submissions")
			{
				submissions.GET("/:id", controllers.GetSubmission)

				// Only citizens create submissions and spend points
				submissions.POST("", middleware.RequireRole(models.RoleCitizen), controllers.CreateSubmission)
				submissions.GET("", middleware.RequireRole(models.RoleCitizen), controllers.GetMySubmissions)
			}

			protected.GET("/points", middleware.RequireRole(models.RoleCitizen), controllers.GetMyPoints)

			// Rewards
			rewards := protected.Group("/rewards")
			{
				rewards.GET("", controllers.GetRewards)
				rewards.POST("/:id/redeem", middleware.RequireRole(models.RoleCitizen), controllers.RedeemReward)
			}

			// Validator review workflow
			review := protected.Group("/review")
			review.Use(middleware.RequireRole(models.RoleValidator))
			{
				review.GET("/queue", controllers.GetReviewQueue)
				review.GET("/history", controllers.GetReviewHistory)
				review.POST("/submissions/:id/approve", controllers.ApproveSubmission)
				review.POST("/submissions/:id/reject", controllers.RejectSubmission)
				review.PUT("/submissions/:id/flag", controllers.FlagSubmission)
			}

			// Admin management
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/barangays", controllers.GetBarangaysAdmin)
				admin.POST("/barangays", controllers.CreateBarangay)
				admin.PUT("/barangays/:id", controllers.UpdateBarangay)
				admin.DELETE("/barangays/:id", controllers.DeleteBarangay)

				admin.POST("/planting-sites", controllers.CreatePlantingSite)
				admin.PUT("/planting-sites/:id", controllers.UpdatePlantingSite)
				admin.DELETE("/planting-sites/:id", controllers.DeletePlantingSite)

				admin.GET("/validators", controllers.GetValidators)
				admin.POST("/validators", controllers.CreateValidator)
				admin.PUT("/validators/:id", controllers.UpdateValidator)

				admin.GET("/rewards", controllers.GetRewardsAdmin)
				admin.POST("/rewards", controllers.CreateReward)
				admin.PUT("/rewards/:id", controllers.UpdateReward)
				admin.DELETE("/rewards/:id", controllers.DeleteReward)

				admin.GET("/dashboard/stats", controllers.GetDashboardStats)
				admin.GET("/dashboard/barangays", controllers.GetBarangayBreakdown)
			}
		}
	}
}
