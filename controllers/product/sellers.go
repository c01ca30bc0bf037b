package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/models"
	"gorm.io/gorm"
)

type TopSeller struct {
	SellerID      string  `json:"seller_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Image         string  `json:"image"`
	ProductCount  int     `json:"product_count"`
	AverageRating float64 `json:"average_rating"`
}

// GET /api/products/top-sellers
// GetTopSellers groups listings by seller, joins profile fields, and returns
// the five biggest sellers ordered by listing count then average rating.
func GetTopSellers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sellers []TopSeller
		err := db.Model(&models.Product{}).
			Select(`products.seller_id,
				users.name,
				users.email,
				users.image,
				COUNT(products.id) AS product_count,
				ROUND(AVG(products.rating), 2) AS average_rating`).
			Joins("JOIN users ON users.id = products.seller_id").
			Group("products.seller_id, users.name, users.email, users.image").
			Order("product_count DESC, average_rating DESC").
			Limit(5).
			Scan(&sellers).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch top sellers"})
			return
		}

		c.JSON(http.StatusOK, sellers)
	}
}
