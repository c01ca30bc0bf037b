package ordercontroller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/models"
	"github.com/peermart/marketplace-api/pkg/cloudinary"
	"gorm.io/gorm"
)

// POST /api/orders/:id/upload-proof
// The buyer attaches a payment proof image; the order moves to payment_sent.
func UploadPaymentProofHandler(db *gorm.DB, up cloudinary.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if !fetchOrder(c, db, &order) {
			return
		}
		if order.BuyerID != c.GetString("user_id") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the buyer may upload payment proof"})
			return
		}

		file, err := c.FormFile("proof")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Proof image is required"})
			return
		}
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read proof image"})
			return
		}
		defer src.Close()

		filename := fmt.Sprintf("order_%d_%d", order.ID, time.Now().UnixNano())
		url, err := up.UploadImage(c.Request.Context(), "payment-proofs", filename, src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload proof image"})
			return
		}

		order.PaymentProof = url
		order.Status = models.OrderStatusPaymentSent
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save payment proof"})
			return
		}

		broadcastOrderUpdate(order)
		c.JSON(http.StatusOK, order)
	}
}
