package ordercontroller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/peermart/marketplace-api/models"
	"github.com/peermart/marketplace-api/pkg/cloudinary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUploader struct {
	url string
	err error
}

func (s stubUploader) UploadImage(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func proofRouter(db *gorm.DB, caller models.User, up cloudinary.Uploader) *gin.Engine {
	r := gin.New()
	r.POST("/orders/:id/upload-proof", asUser(caller), UploadPaymentProofHandler(db, up))
	return r
}

func proofRequest(t *testing.T, orderID uint) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("proof", "receipt.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not really a png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/orders/%d/upload-proof", orderID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadProofStoresURLAndMarksPaymentSent(t *testing.T) {
	db := setupTestDB(t)
	seller := seedUser(t, db, "seller")
	buyer := seedUser(t, db, "buyer")
	product := seedProduct(t, db, seller.ID, 100, 5)
	order := seedOrder(t, db, buyer.ID, seller.ID, product.ID, models.OrderStatusPending)

	r := proofRouter(db, buyer, stubUploader{url: "https://cdn.test/proofs/1.png"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, proofRequest(t, order.ID))
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Order
	require.NoError(t, db.First(&updated, order.ID).Error)
	assert.Equal(t, "https://cdn.test/proofs/1.png", updated.PaymentProof)
	assert.Equal(t, models.OrderStatusPaymentSent, updated.Status)
}

func TestUploadProofBuyerOnly(t *testing.T) {
	db := setupTestDB(t)
	seller := seedUser(t, db, "seller")
	buyer := seedUser(t, db, "buyer")
	product := seedProduct(t, db, seller.ID, 100, 5)
	order := seedOrder(t, db, buyer.ID, seller.ID, product.ID, models.OrderStatusPending)

	r := proofRouter(db, seller, stubUploader{url: "https://cdn.test/proofs/1.png"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, proofRequest(t, order.ID))
	assert.Equal(t, http.StatusForbidden, w.Code)

	var updated models.Order
	require.NoError(t, db.First(&updated, order.ID).Error)
	assert.Empty(t, updated.PaymentProof)
	assert.Equal(t, models.OrderStatusPending, updated.Status)
}

func TestUploadProofRequiresFile(t *testing.T) {
	db := setupTestDB(t)
	seller := seedUser(t, db, "seller")
	buyer := seedUser(t, db, "buyer")
	product := seedProduct(t, db, seller.ID, 100, 5)
	order := seedOrder(t, db, buyer.ID, seller.ID, product.ID, models.OrderStatusPending)

	r := proofRouter(db, buyer, stubUploader{url: "https://cdn.test/proofs/1.png"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/orders/%d/upload-proof", order.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadProofUploaderFailure(t *testing.T) {
	db := setupTestDB(t)
	seller := seedUser(t, db, "seller")
	buyer := seedUser(t, db, "buyer")
	product := seedProduct(t, db, seller.ID, 100, 5)
	order := seedOrder(t, db, buyer.ID, seller.ID, product.ID, models.OrderStatusPending)

	r := proofRouter(db, buyer, stubUploader{err: errors.New("upstream down")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, proofRequest(t, order.ID))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var updated models.Order
	require.NoError(t, db.First(&updated, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, updated.Status)
}
