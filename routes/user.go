package routes

import (
	"github.com/gin-gonic/gin"
	usercontroller "github.com/peermart/marketplace-api/controllers/user"
	"github.com/peermart/marketplace-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/api/user/*" endpoints.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	userGroup := api.Group("/user")
	userGroup.Use(middleware.Authenticate(db))
	{
		userGroup.GET("/me", usercontroller.GetMe)
		userGroup.PUT("/update", usercontroller.UpdateUser(db))
		userGroup.GET("/refresh", usercontroller.RefreshToken)
	}
}
