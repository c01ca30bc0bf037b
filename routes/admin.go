package routes

import (
	"github.com/gin-gonic/gin"
	admincontroller "github.com/peermart/marketplace-api/controllers/admin"
	usercontroller "github.com/peermart/marketplace-api/controllers/user"
	"github.com/peermart/marketplace-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints.
func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB) {
	admin := api.Group("/admin")

	// Bootstrap endpoint: creating the first admin cannot require an admin.
	admin.POST("/register", admincontroller.RegisterAdmin(db))

	guarded := admin.Group("")
	guarded.Use(middleware.Authenticate(db), middleware.RequireAdmin)
	{
		guarded.POST("/add-users", admincontroller.AddUser(db))
		guarded.GET("/users", usercontroller.GetAllUsers(db))
		guarded.PUT("/users/:id/ban", admincontroller.BanUser(db))
		guarded.PUT("/users/:id/unban", admincontroller.UnbanUser(db))
		guarded.DELETE("/users/:id", admincontroller.DeleteUser(db))
	}
}
