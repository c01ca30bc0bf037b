package productcontroller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func reviewRouter(db *gorm.DB, caller models.User) *gin.Engine {
	r := gin.New()
	authed := r.Group("", asUser(caller))
	authed.POST("/products/:id/reviews", AddReview(db))
	authed.PUT("/products/:id/reviews/:reviewId", UpdateReview(db))
	authed.DELETE("/products/:id/reviews/:reviewId", DeleteReview(db))
	return r
}

func productRating(t *testing.T, db *gorm.DB, id uint) float64 {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return product.Rating
}

func TestAddReviewRecomputesRating(t *testing.T) {
	db := setupTestDB(t)
	seller := seedUser(t, db, "seller")
	buyer := seedUser(t, db, "buyer")
	product := seedProduct(t, db, seller.ID, 100, 10)
	r := reviewRouter(db, buyer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/products/%d/reviews", product.ID),
		strings.NewReader(`{"rating": 4, "comment": "good"}`))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 4.0, productRating(t, db, product.ID))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/products/%d/reviews", product.ID),
		strings.NewReader(`{"rating": 2}`))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 3.0, productRating(t, db, product.ID))
}

func TestRatingRoundedToTwoDecimals(t *testing.T) {
	db := setupTestDB(t)
	seller := seedUser(t, db, "seller")
	buyer := seedUser(t, db, "buyer")
	product := seedProduct(t, db, seller.ID, 100, 10)
	r := reviewRouter(db, buyer)

	// 5, 4, 4 -> mean 4.333... -> 4.33
	for _, rating := range []int{5, 4, 4} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/products/%d/reviews", product.ID),
			strings.NewReader(fmt.Sprintf(`{"rating": %d}`, rating)))
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	assert.Equal(t, 4.33, productRating(t, db, product.ID))
}

func TestAddReviewRejectsOutOfRangeRating(t *testing.T) {
	db := setupTestDB(t)
	seller := seedUser(t, db, "seller")
	buyer := seedUser(t, db, "buyer")
	product := seedProduct(t, db, seller.ID, 100, 10)
	r := reviewRouter(db, buyer)

	for _, body := range []string{`{"rating": 6}`, `{"rating": -1}`, `{}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/products/%d/reviews", product.ID),
			strings.NewReader(body))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestUpdateReviewAuthorOnly(t *testing.T) {
	db := setupTestDB(t)
	seller := seedUser(t, db, "seller")
	author := seedUser(t, db, "author")
	other := seedUser(t, db, "other")
	product := seedProduct(t, db, seller.ID, 100, 10)

	review := models.Review{ProductID: product.ID, UserID: author.ID, Rating: 4}
	require.NoError(t, db.Create(&review).Error)
	require.NoError(t, recomputeRating(db, product.ID))

	r := reviewRouter(db, other)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/products/%d/reviews/%d", product.ID, review.ID),
		strings.NewReader(`{"rating": 1}`))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 4.0, productRating(t, db, product.ID))

	r = reviewRouter(db, author)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/products/%d/reviews/%d", product.ID, review.ID),
		strings.NewReader(`{"rating": 1}`))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, productRating(t, db, product.ID))
}

func TestDeleteLastReviewResetsRating(t *testing.T) {
	db := setupTestDB(t)
	seller := seedUser(t, db, "seller")
	author := seedUser(t, db, "author")
	product := seedProduct(t, db, seller.ID, 100, 10)

	review := models.Review{ProductID: product.ID, UserID: author.ID, Rating: 5}
	require.NoError(t, db.Create(&review).Error)
	require.NoError(t, recomputeRating(db, product.ID))
	require.Equal(t, 5.0, productRating(t, db, product.ID))

	r := reviewRouter(db, author)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/products/%d/reviews/%d", product.ID, review.ID), nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, productRating(t, db, product.ID))
}

func TestDeleteReviewAuthorOnly(t *testing.T) {
	db := setupTestDB(t)
	seller := seedUser(t, db, "seller")
	author := seedUser(t, db, "author")
	other := seedUser(t, db, "other")
	product := seedProduct(t, db, seller.ID, 100, 10)

	review := models.Review{ProductID: product.ID, UserID: author.ID, Rating: 5}
	require.NoError(t, db.Create(&review).Error)

	r := reviewRouter(db, other)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/products/%d/reviews/%d", product.ID, review.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
