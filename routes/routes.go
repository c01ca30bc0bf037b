package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/pkg/cloudinary"
	"github.com/peermart/marketplace-api/pkg/mailer"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, up cloudinary.Uploader, m mailer.Mailer) {
	api := r.Group("/api")

	SetupAuthRoutes(api, db, m)
	SetupUserRoutes(api, db)
	SetupProductRoutes(api, db, up)
	SetupCartRoutes(api, db)
	SetupOrderRoutes(api, db, up)
	SetupAdminRoutes(api, db)
}
