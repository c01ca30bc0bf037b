package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/auth"
	otpcontroller "github.com/peermart/marketplace-api/controllers/otp"
	"github.com/peermart/marketplace-api/middleware"
	"github.com/peermart/marketplace-api/pkg/mailer"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers the email login and OTP endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB, m mailer.Mailer) {
	emailAuth := api.Group("/email-auth")
	{
		emailAuth.POST("/login", auth.EmailLoginHandler(db))
	}

	otp := api.Group("/otp")
	otp.Use(middleware.Authenticate(db))
	{
		otp.POST("/send", otpcontroller.SendOTP(db, m))
		otp.POST("/verify", otpcontroller.VerifyOTP(db))
	}
}
