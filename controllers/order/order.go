package ordercontroller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/peermart/marketplace-api/models"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type CreateOrderRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type DeliveryInfoRequest struct {
	Address string `json:"address" binding:"required"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// -------- Helpers --------

var errInsufficientStock = errors.New("insufficient stock")

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusPaymentSent):
		return models.OrderStatusPaymentSent, nil
	case string(models.OrderStatusPaid):
		return models.OrderStatusPaid, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusCompleted):
		return models.OrderStatusCompleted, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// fetchOrder loads the order in :id and enforces that the caller is the
// buyer, the seller, or an admin.
func fetchOrder(c *gin.Context, db *gorm.DB, order *models.Order) bool {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return false
	}
	if err := db.First(order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return false
	}

	user := c.MustGet("user").(models.User)
	if user.ID != order.BuyerID && user.ID != order.SellerID && user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant in this order"})
		return false
	}
	return true
}

// -------- Core Logic --------

// CreateOrder places an order for a product: the stock decrement is a
// conditional update inside the transaction, so a concurrent order for the
// same product can never oversell.
func CreateOrder(db *gorm.DB, buyerID string, req CreateOrderRequest) (*models.Order, error) {
	var product models.Product
	if err := db.First(&product, req.ProductID).Error; err != nil {
		return nil, err
	}
	if product.SellerID == buyerID {
		return nil, errors.New("cannot order your own product")
	}
	if req.Quantity > product.Stock {
		return nil, errInsufficientStock
	}

	order := models.Order{
		OrderRef:       generateOrderRef(),
		BuyerID:        buyerID,
		SellerID:       product.SellerID,
		ProductID:      product.ID,
		Quantity:       req.Quantity,
		TotalAmount:    product.Price * float64(req.Quantity),
		Status:         models.OrderStatusPending,
		DeliveryStatus: models.DeliveryStatusPending,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", product.ID, req.Quantity).
			Update("stock", gorm.Expr("stock - ?", req.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errInsufficientStock
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// applyStatus applies a status transition and its coupled delivery-status
// side effects. Completing an order also bumps the participants' totals,
// exactly once per order.
func applyStatus(tx *gorm.DB, order *models.Order, status models.OrderStatus) error {
	previous := order.Status
	order.Status = status

	switch status {
	case models.OrderStatusShipped:
		order.DeliveryStatus = models.DeliveryStatusShipped
	case models.OrderStatusCompleted:
		order.DeliveryStatus = models.DeliveryStatusDelivered
		if previous != models.OrderStatusCompleted {
			if err := tx.Model(&models.User{}).Where("id = ?", order.BuyerID).
				Update("total_purchased", gorm.Expr("total_purchased + ?", order.Quantity)).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.User{}).Where("id = ?", order.SellerID).
				Update("total_sold", gorm.Expr("total_sold + ?", order.Quantity)).Error; err != nil {
				return err
			}
		}
	}

	return tx.Save(order).Error
}

// -------- Handlers --------

// POST /api/orders
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := CreateOrder(db, c.GetString("user_id"), req)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		broadcastOrderUpdate(*order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Buyer").
			Preload("Seller").
			Preload("Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/buyer
func GetBuyerOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Where("buyer_id = ?", c.GetString("user_id")).
			Preload("Seller").
			Preload("Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/seller
func GetSellerOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Where("seller_id = ?", c.GetString("user_id")).
			Preload("Buyer").
			Preload("Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:id
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if !fetchOrder(c, db, &order) {
			return
		}
		db.Preload("Buyer").Preload("Seller").Preload("Product").First(&order, order.ID)
		c.JSON(http.StatusOK, order)
	}
}

// PUT /api/orders/:id/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if !fetchOrder(c, db, &order) {
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// completed and cancelled are terminal
		if order.Status == models.OrderStatusCompleted || order.Status == models.OrderStatusCancelled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order status can no longer be changed"})
			return
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			return applyStatus(tx, &order, newStatus)
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		broadcastOrderUpdate(order)
		c.JSON(http.StatusOK, order)
	}
}

// PUT /api/orders/:id/confirm and /api/orders/:id/accept
// ConfirmPaymentHandler records the seller's payment confirmation and moves
// the order to paid.
func ConfirmPaymentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if !fetchOrder(c, db, &order) {
			return
		}
		if order.SellerID != c.GetString("user_id") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the seller may confirm payment"})
			return
		}

		order.PaymentConfirmedBySeller = true
		order.Status = models.OrderStatusPaid
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment"})
			return
		}

		broadcastOrderUpdate(order)
		c.JSON(http.StatusOK, order)
	}
}

// PUT /api/orders/:id/delivery
func UpdateDeliveryInfoHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if !fetchOrder(c, db, &order) {
			return
		}
		if order.BuyerID != c.GetString("user_id") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the buyer may set delivery info"})
			return
		}

		var req DeliveryInfoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order.Delivery = models.DeliveryInfo{
			Address: req.Address,
			City:    req.City,
			Phone:   req.Phone,
			Notes:   req.Notes,
		}
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery info"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// PUT /api/orders/:id/cancel
// Cancellation is only possible before shipment; the reserved stock goes
// back to the product.
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if !fetchOrder(c, db, &order) {
			return
		}

		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusPaymentSent {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order can no longer be cancelled"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", order.ProductID).
				Update("stock", gorm.Expr("stock + ?", order.Quantity)).Error; err != nil {
				return err
			}
			order.Status = models.OrderStatusCancelled
			return tx.Save(&order).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
			return
		}

		broadcastOrderUpdate(order)
		c.JSON(http.StatusOK, order)
	}
}

// DELETE /api/orders/:id (admin)
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}
		result := db.Where("id = ?", id).Delete(&models.Order{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
