package productcontroller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/models"
	"gorm.io/gorm"
)

type ReviewInput struct {
	Comment string   `json:"comment"`
	Rating  *float64 `json:"rating" binding:"required"`
}

func validRating(r float64) bool {
	return r >= 0 && r <= 5
}

// recomputeRating sets the product's derived rating to the mean of its
// review ratings rounded to 2 decimal places, or 0 when none remain.
func recomputeRating(tx *gorm.DB, productID uint) error {
	var reviews []models.Review
	if err := tx.Where("product_id = ?", productID).Find(&reviews).Error; err != nil {
		return err
	}

	rating := 0.0
	if len(reviews) > 0 {
		var sum float64
		for _, r := range reviews {
			sum += r.Rating
		}
		rating = math.Round(sum/float64(len(reviews))*100) / 100
	}

	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("rating", rating).Error
}

// POST /api/products/:id/reviews
func AddReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		productID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil || !validRating(*input.Rating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5"})
			return
		}

		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		review := models.Review{
			ProductID: product.ID,
			UserID:    userID,
			Comment:   input.Comment,
			Rating:    *input.Rating,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
			return recomputeRating(tx, product.ID)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add review"})
			return
		}

		c.JSON(http.StatusCreated, review)
	}
}

// fetchOwnReview loads the review in :reviewId and enforces that the caller
// is its author.
func fetchOwnReview(c *gin.Context, db *gorm.DB, review *models.Review) bool {
	reviewID, err := strconv.Atoi(c.Param("reviewId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return false
	}

	if err := db.First(review, reviewID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return false
	}

	if review.UserID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the review author may modify it"})
		return false
	}
	return true
}

// PUT /api/products/:id/reviews/:reviewId
func UpdateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var review models.Review
		if !fetchOwnReview(c, db, &review) {
			return
		}

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil || !validRating(*input.Rating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 0 and 5"})
			return
		}

		review.Comment = input.Comment
		review.Rating = *input.Rating

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&review).Error; err != nil {
				return err
			}
			return recomputeRating(tx, review.ProductID)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
			return
		}

		c.JSON(http.StatusOK, review)
	}
}

// DELETE /api/products/:id/reviews/:reviewId
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var review models.Review
		if !fetchOwnReview(c, db, &review) {
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&review).Error; err != nil {
				return err
			}
			return recomputeRating(tx, review.ProductID)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}
