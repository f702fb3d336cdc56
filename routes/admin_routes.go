package routes

import (
	"github.com/Aravind-813/GigSphere/controllers"
	"github.com/Aravind-813/GigSphere/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes registers the operator surface.
func initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.POST("/login", controllers.AdminLogin)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		protected.GET("/payouts/pending", controllers.ListPendingPayouts)
		protected.GET("/payouts/pending/export", controllers.DownloadPendingPayoutsExcel)
		protected.POST("/payouts/:id/confirm", controllers.ConfirmManualPayout)
		protected.GET("/refunds/failed", controllers.ListFailedRefunds)
		protected.GET("/orders/:id", controllers.GetOrder)
		protected.GET("/orders/:id/deliveries", controllers.GetDeliveryHistory)
	}
}
