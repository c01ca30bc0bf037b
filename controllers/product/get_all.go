package productcontroller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/models"
	"gorm.io/gorm"
)

// sortableColumns is the allow-list for the sort_by query param; anything
// else falls back to created_at so user input never reaches the ORDER BY
// clause verbatim.
var sortableColumns = map[string]bool{
	"created_at": true,
	"price":      true,
	"rating":     true,
	"stock":      true,
	"name":       true,
}

// GET /api/products
// GetProducts lists products with filtering, free-text search, sorting, and
// pagination. The response carries page metadata alongside the results.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		category := c.Query("category")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		inStock := c.Query("in_stock")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		if !sortableColumns[sortBy] {
			sortBy = "created_at"
		}
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 {
			limit = 10
		}

		query := db.Model(&models.Product{}).
			Preload("Images").
			Preload("PaymentOptions").
			Preload("Reviews")

		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where("name ILIKE ? OR description ILIKE ?", likePattern, likePattern)
		}
		if category != "" {
			query = query.Where("category ILIKE ?", "%"+category+"%")
		}
		if minPriceStr != "" {
			if mp, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
				query = query.Where("price >= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
		}
		if maxPriceStr != "" {
			if mp, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
				query = query.Where("price <= ?", mp)
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
		}
		if inStock == "true" {
			query = query.Where("stock > 0")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
			return
		}

		orderClause := fmt.Sprintf("%s %s", sortBy, sortOrder)
		var products []models.Product
		if err := query.
			Order(orderClause).
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		totalPages := (total + int64(limit) - 1) / int64(limit)
		c.JSON(http.StatusOK, gin.H{
			"products":    products,
			"total":       total,
			"page":        page,
			"limit":       limit,
			"total_pages": totalPages,
		})
	}
}
