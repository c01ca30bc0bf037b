package routes

import (
	"github.com/gin-gonic/gin"
	cartcontroller "github.com/peermart/marketplace-api/controllers/cart"
	"github.com/peermart/marketplace-api/middleware"
	"gorm.io/gorm"
)

// SetupCartRoutes registers all "/api/cart/*" endpoints.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cart := api.Group("/cart")
	cart.Use(middleware.Authenticate(db))
	{
		cart.POST("/add", cartcontroller.AddCartItem(db))
		cart.GET("", cartcontroller.GetCart(db))
		cart.PUT("/update/:productId", cartcontroller.UpdateCartItem(db))
		cart.DELETE("/remove/:productId", cartcontroller.RemoveCartItem(db))
		cart.DELETE("/clear", cartcontroller.ClearCart(db))
	}
}
