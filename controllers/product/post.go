package productcontroller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/models"
	"github.com/peermart/marketplace-api/pkg/cloudinary"
	"gorm.io/gorm"
)

const maxProductImages = 5

type paymentOptionInput struct {
	Method        string `json:"method"`
	AccountNumber string `json:"account_number"`
}

// parsePaymentOptions validates the payment_options form field: at least one
// option, method in the allow-list, non-empty account number.
func parsePaymentOptions(raw string) ([]models.PaymentOption, error) {
	if raw == "" {
		return nil, fmt.Errorf("at least one payment option is required")
	}
	var inputs []paymentOptionInput
	if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
		return nil, fmt.Errorf("invalid payment_options format")
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("at least one payment option is required")
	}

	options := make([]models.PaymentOption, 0, len(inputs))
	for _, in := range inputs {
		method := strings.ToLower(strings.TrimSpace(in.Method))
		if !models.IsAllowedPaymentMethod(method) {
			return nil, fmt.Errorf("invalid payment method: %s", in.Method)
		}
		if strings.TrimSpace(in.AccountNumber) == "" {
			return nil, fmt.Errorf("payment option account number is required")
		}
		options = append(options, models.PaymentOption{
			Method:        method,
			AccountNumber: strings.TrimSpace(in.AccountNumber),
		})
	}
	return options, nil
}

// uploadProductImages pushes each multipart file to external storage and
// returns the resulting URLs.
func uploadProductImages(c *gin.Context, up cloudinary.Uploader) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil // no multipart files attached
	}
	files := form.File["images"]
	if len(files) > maxProductImages {
		return nil, fmt.Errorf("a maximum of %d images is allowed", maxProductImages)
	}

	var urls []string
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to read image %s", file.Filename)
		}
		ext := filepath.Ext(file.Filename)
		base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
		base = strings.ReplaceAll(base, " ", "_")
		filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), base)

		url, err := up.UploadImage(c.Request.Context(), "products", filename, src)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %s", file.Filename)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// POST /api/products
// CreateProduct creates a listing owned by the authenticated seller, with
// up to 5 uploaded images and at least one payment option.
func CreateProduct(db *gorm.DB, up cloudinary.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID := c.GetString("user_id")

		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		stockStr := c.PostForm("stock")
		if name == "" || priceStr == "" || stockStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, price, and stock are required"})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
			return
		}

		options, err := parsePaymentOptions(c.PostForm("payment_options"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		urls, err := uploadProductImages(c, up)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var images []models.ProductImage
		for _, url := range urls {
			images = append(images, models.ProductImage{URL: url})
		}

		product := models.Product{
			SellerID:       sellerID,
			Name:           name,
			Description:    c.PostForm("description"),
			Category:       c.PostForm("category"),
			Price:          price,
			Stock:          stock,
			Images:         images,
			PaymentOptions: options,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
