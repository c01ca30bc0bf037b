package productcontroller

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.PaymentOption{},
		&models.Review{},
	))
	return db
}

// asUser stubs the auth resolver so handler tests can pick the caller.
func asUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

func seedUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()
	user := models.User{ID: id, Name: "User " + id, Email: id + "@example.com"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, sellerID string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		SellerID: sellerID,
		Name:     "Test Product",
		Category: "electronics",
		Price:    price,
		Stock:    stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func init() {
	gin.SetMode(gin.TestMode)
}
