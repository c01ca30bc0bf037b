package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/models"
	"gorm.io/gorm"
)

// fetchOwnedProduct loads the product in the :id param and enforces that the
// caller is the owning seller. Writes the error response and returns false
// when the lookup or ownership check fails.
func fetchOwnedProduct(c *gin.Context, db *gorm.DB, product *models.Product) bool {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return false
	}

	if err := db.Preload("Images").Preload("PaymentOptions").First(product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		}
		return false
	}

	if product.SellerID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owning seller may modify this product"})
		return false
	}
	return true
}
