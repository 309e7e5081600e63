package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parthbuilds/Shubha-Kuteer/internal/middleware"
	"github.com/parthbuilds/Shubha-Kuteer/internal/models"
	"github.com/parthbuilds/Shubha-Kuteer/internal/payment"
	"github.com/parthbuilds/Shubha-Kuteer/internal/repository"
)

type checkoutItemRequest struct {
	ProductID uint    `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"qty"`
	Price     float64 `json:"price"`
	Variant   string  `json:"variant"`
}

type createOrderRequest struct {
	FirstName   string                `json:"first_name"`
	LastName    string                `json:"last_name"`
	Email       string                `json:"email"`
	PhoneNumber string                `json:"phone_number"`
	City        string                `json:"city"`
	Apartment   string                `json:"apartment"`
	PostalCode  string                `json:"postal_code"`
	Note        string                `json:"note"`
	Amount      float64               `json:"amount"`
	Products    []checkoutItemRequest `json:"products"`
}

/* =========================
   CREATE ORDER
========================= */

// CreateOrder registers a payment intent with the gateway, then persists the
// pending order linking the local row to the gateway's order id. The two
// writes cannot be atomic; a gateway success followed by an insert failure
// leaves an orphaned remote order that the reconciliation sweep resolves.
func CreateOrder(repo repository.OrderRepository, gateway payment.Gateway, keyID, currency string, gatewayTimeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/create-order"
		defer handlePanic(c, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.RecordOrderCreated("validation_error")
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}

		if missing := validateCheckout(req.FirstName, req.Email, req.Amount); len(missing) > 0 {
			middleware.RecordOrderCreated("validation_error")
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "missing required fields: " + strings.Join(missing, ", "),
			})
			return
		}

		// Gateway first. No local row is written until the gateway accepts
		// the payment intent, so a rejected checkout leaves nothing behind.
		gatewayCtx, cancelGateway := context.WithTimeout(c.Request.Context(), gatewayTimeout)
		gatewayOrder, err := gateway.CreateOrder(gatewayCtx, toMinorUnits(req.Amount), currency, newReceiptID())
		cancelGateway()
		if err != nil {
			log.Printf("[%s] gateway error: %v", route, err)
			middleware.RecordOrderCreated("gateway_error")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Payment gateway error"})
			return
		}

		items := make(models.OrderItemList, 0, len(req.Products))
		for _, item := range req.Products {
			items = append(items, models.OrderItem{
				ProductID: item.ProductID,
				Name:      strings.TrimSpace(item.Name),
				Quantity:  item.Quantity,
				Price:     item.Price,
				Variant:   strings.TrimSpace(item.Variant),
			})
		}

		order := models.Order{
			FirstName:       strings.TrimSpace(req.FirstName),
			LastName:        strings.TrimSpace(req.LastName),
			Email:           strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:           strings.TrimSpace(req.PhoneNumber),
			City:            strings.TrimSpace(req.City),
			Apartment:       strings.TrimSpace(req.Apartment),
			PostalCode:      strings.TrimSpace(req.PostalCode),
			Note:            strings.TrimSpace(req.Note),
			Amount:          req.Amount,
			Currency:        currency,
			Items:           items,
			RazorpayOrderID: gatewayOrder.ID(),
			Status:          models.OrderStatusPending,
		}

		dbCtx, cancelDB := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancelDB()

		if err := repo.Create(dbCtx, &order); err != nil {
			// The remote order exists but the local row does not. The sweep
			// cannot recover this one (there is no local reference), so the
			// orphan stays on the gateway side; the customer retries checkout.
			log.Printf("[%s] insert failed after gateway create, orphaned gateway order %s: %v", route, gatewayOrder.ID(), err)
			middleware.RecordOrderCreated("db_error")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
			return
		}

		log.Printf("[%s] order %d created, gateway order %s", route, order.ID, order.RazorpayOrderID)
		middleware.RecordOrderCreated("success")

		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"key":            keyID,
			"razorpay_order": gatewayOrder,
			"order_id":       order.ID,
		})
	}
}
