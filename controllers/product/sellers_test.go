package productcontroller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTopSellers(t *testing.T) {
	db := setupTestDB(t)

	// big: 3 products, small: 1 product, none: no products
	big := seedUser(t, db, "big")
	small := seedUser(t, db, "small")
	seedUser(t, db, "none")

	for i := 0; i < 3; i++ {
		product := models.Product{SellerID: big.ID, Name: fmt.Sprintf("B%d", i), Price: 10, Rating: 4}
		require.NoError(t, db.Create(&product).Error)
	}
	product := models.Product{SellerID: small.ID, Name: "S", Price: 10, Rating: 5}
	require.NoError(t, db.Create(&product).Error)

	r := gin.New()
	r.GET("/products/top-sellers", GetTopSellers(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/top-sellers", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var sellers []TopSeller
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sellers))
	require.Len(t, sellers, 2)

	assert.Equal(t, big.ID, sellers[0].SellerID)
	assert.Equal(t, 3, sellers[0].ProductCount)
	assert.Equal(t, 4.0, sellers[0].AverageRating)
	assert.Equal(t, small.ID, sellers[1].SellerID)
	assert.Equal(t, 5.0, sellers[1].AverageRating)
}
