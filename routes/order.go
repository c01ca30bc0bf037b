package routes

import (
	"github.com/gin-gonic/gin"
	ordercontroller "github.com/peermart/marketplace-api/controllers/order"
	"github.com/peermart/marketplace-api/middleware"
	"github.com/peermart/marketplace-api/pkg/cloudinary"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers all "/api/orders/*" endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, up cloudinary.Uploader) {
	orders := api.Group("/orders")
	orders.Use(middleware.Authenticate(db))
	{
		orders.POST("", ordercontroller.CreateOrderHandler(db))
		orders.GET("", middleware.RequireAdmin, ordercontroller.GetAllOrdersHandler(db))
		orders.GET("/buyer", ordercontroller.GetBuyerOrdersHandler(db))
		orders.GET("/seller", ordercontroller.GetSellerOrdersHandler(db))
		orders.GET("/:id", ordercontroller.GetOrderByIDHandler(db))

		orders.PUT("/:id/status", ordercontroller.UpdateOrderStatusHandler(db))
		orders.PUT("/:id/confirm", ordercontroller.ConfirmPaymentHandler(db))
		orders.PUT("/:id/accept", ordercontroller.ConfirmPaymentHandler(db))
		orders.POST("/:id/upload-proof", ordercontroller.UploadPaymentProofHandler(db, up))
		orders.PUT("/:id/delivery", ordercontroller.UpdateDeliveryInfoHandler(db))
		orders.PUT("/:id/cancel", ordercontroller.CancelOrderHandler(db))
		orders.DELETE("/:id", middleware.RequireAdmin, ordercontroller.DeleteOrderHandler(db))
	}

	// websocket endpoint for real-time order updates
	api.GET("/orders/ws", ordercontroller.OrderWebSocketHandler)
}
