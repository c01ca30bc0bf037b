package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/models"
	"github.com/peermart/marketplace-api/pkg/cloudinary"
	"gorm.io/gorm"
)

// PUT /api/products/:id
// UpdateProduct merges provided fields into an existing listing. Owner only.
// The final image list is the union of retained existing URLs (sent as
// repeated "existing_images" form values) and newly uploaded files.
func UpdateProduct(db *gorm.DB, up cloudinary.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if !fetchOwnedProduct(c, db, &product) {
			return
		}

		if v := c.PostForm("name"); v != "" {
			product.Name = v
		}
		if v := c.PostForm("description"); v != "" {
			product.Description = v
		}
		if v := c.PostForm("category"); v != "" {
			product.Category = v
		}
		if v := c.PostForm("price"); v != "" {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			product.Price = price
		}
		if v := c.PostForm("stock"); v != "" {
			stock, err := strconv.Atoi(v)
			if err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
			product.Stock = stock
		}

		if raw := c.PostForm("payment_options"); raw != "" {
			options, err := parsePaymentOptions(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := db.Where("product_id = ?", product.ID).Delete(&models.PaymentOption{}).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment options"})
				return
			}
			for i := range options {
				options[i].ProductID = product.ID
			}
			product.PaymentOptions = options
		}

		// Rebuild the image list when the client sends one: keep the URLs it
		// wants retained, then append newly uploaded files.
		form, _ := c.MultipartForm()
		retained := c.PostFormArray("existing_images")
		hasUploads := form != nil && len(form.File["images"]) > 0
		if len(retained) > 0 || hasUploads {
			urls, err := uploadProductImages(c, up)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := db.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update images"})
				return
			}
			var images []models.ProductImage
			for _, url := range append(retained, urls...) {
				images = append(images, models.ProductImage{ProductID: product.ID, URL: url})
			}
			product.Images = images
		}

		if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
