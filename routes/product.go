package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/peermart/marketplace-api/controllers/product"
	"github.com/peermart/marketplace-api/middleware"
	"github.com/peermart/marketplace-api/pkg/cloudinary"
	"gorm.io/gorm"
)

// SetupProductRoutes registers all "/api/products/*" endpoints.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB, up cloudinary.Uploader) {
	products := api.Group("/products")
	{
		// Public browsing
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/top-sellers", productcontroller.GetTopSellers(db))
		products.GET("/:id", productcontroller.GetProductByID(db))

		// Seller-owned mutations
		authed := products.Group("")
		authed.Use(middleware.Authenticate(db))
		{
			authed.POST("", productcontroller.CreateProduct(db, up))
			authed.PUT("/:id", productcontroller.UpdateProduct(db, up))
			authed.DELETE("/:id", productcontroller.DeleteProduct(db))
			authed.PUT("/:id/stock/increment", productcontroller.IncrementStock(db))
			authed.PUT("/:id/stock/decrement", productcontroller.DecrementStock(db))

			authed.POST("/:id/reviews", productcontroller.AddReview(db))
			authed.PUT("/:id/reviews/:reviewId", productcontroller.UpdateReview(db))
			authed.DELETE("/:id/reviews/:reviewId", productcontroller.DeleteReview(db))

			authed.GET("/export-excel", middleware.RequireAdmin, productcontroller.ExportProductsToExcel(db))
		}
	}
}
