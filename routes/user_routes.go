package routes

import (
	"github.com/Aravind-813/GigSphere/controllers"
	"github.com/Aravind-813/GigSphere/middleware"
	"github.com/Aravind-813/GigSphere/models"
	"github.com/gin-gonic/gin"
)

// initUserRoutes registers the marketplace-facing routes.
func initUserRoutes(api *gin.RouterGroup) {
	// Public
	api.POST("/register", controllers.Register)
	api.POST("/login", controllers.Login)
	api.GET("/services/:id", controllers.GetService)

	// Authenticated, either role
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/profile", controllers.GetProfile)
		authed.GET("/notifications", controllers.ListNotifications)
		authed.POST("/notifications/:id/read", controllers.MarkNotificationRead)

		authed.GET("/orders", controllers.ListOrders)
		authed.GET("/orders/:id", controllers.GetOrder)
		authed.GET("/orders/:id/deliveries", controllers.GetDeliveryHistory)
		authed.GET("/orders/:id/receipt", controllers.DownloadReceipt)
		authed.GET("/orders/:id/files/url", controllers.GetDeliveryFileURL)
		authed.GET("/orders/:id/chat", controllers.GetChatRoom)
	}

	// Client-only lifecycle operations
	client := api.Group("")
	client.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleClient))
	{
		client.POST("/orders", controllers.CreateOrder)
		client.POST("/orders/:id/payment/initiate", controllers.InitiateOrderPayment)
		client.POST("/orders/:id/payment/verify", controllers.VerifyOrderPayment)
		client.POST("/orders/:id/revision", controllers.RequestRevision)
		client.POST("/orders/:id/complete", controllers.CompleteOrder)
		client.POST("/orders/:id/cancel", controllers.CancelOrder)
	}

	// Freelancer-only lifecycle operations and tools
	freelancer := api.Group("/freelancer")
	freelancer.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleFreelancer))
	{
		freelancer.GET("/services", controllers.ListMyServices)
		freelancer.POST("/services", controllers.CreateService)
		freelancer.GET("/payout-details", controllers.GetPayoutDetails)
		freelancer.PUT("/payout-details", controllers.UpdatePayoutDetails)
	}

	freelancerOrders := api.Group("")
	freelancerOrders.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleFreelancer))
	{
		freelancerOrders.POST("/orders/:id/accept", controllers.AcceptOrder)
		freelancerOrders.POST("/orders/:id/decline", controllers.DeclineOrder)
		freelancerOrders.POST("/orders/:id/start", controllers.StartWork)
		freelancerOrders.POST("/orders/:id/deliver", controllers.SubmitDelivery)
		freelancerOrders.POST("/orders/:id/files", controllers.UploadDeliveryFile)
	}
}
