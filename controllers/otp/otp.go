package otpcontroller

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/models"
	"github.com/peermart/marketplace-api/pkg/mailer"
	"gorm.io/gorm"
)

const otpTTL = 5 * time.Minute

type VerifyOTPRequest struct {
	Code string `json:"code" binding:"required"`
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// POST /api/otp/send
func SendOTP(db *gorm.DB, m mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(models.User)

		code, err := generateCode()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate code"})
			return
		}

		otp := models.OTP{
			UserID:    user.ID,
			Code:      code,
			ExpiresAt: time.Now().Add(otpTTL),
		}
		if err := db.Create(&otp).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store code"})
			return
		}

		if err := m.SendOTP(user.Email, code); err != nil {
			log.Printf("Failed to send OTP email to %s: %v", user.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send code"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
	}
}

// POST /api/otp/verify
// A matching, unexpired code marks the user verified and consumes all of
// their outstanding codes.
func VerifyOTP(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(models.User)

		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code is required"})
			return
		}

		var otp models.OTP
		err := db.Where("user_id = ? AND code = ? AND expires_at > ?",
			user.ID, req.Code, time.Now()).First(&otp).Error
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired code"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.OTP{}).Error; err != nil {
				return err
			}
			return tx.Model(&models.User{}).Where("id = ?", user.ID).Update("verified", true).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify code"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Account verified"})
	}
}
