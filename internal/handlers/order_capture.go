package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parthbuilds/Shubha-Kuteer/internal/middleware"
	"github.com/parthbuilds/Shubha-Kuteer/internal/models"
	"github.com/parthbuilds/Shubha-Kuteer/internal/repository"
)

type captureOrderRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	PaymentStatus     string `json:"payment_status"`

	// OrderID is echoed by the storefront for log correlation only.
	// Reconciliation keys on the gateway reference, never on this.
	OrderID uint `json:"order_id"`
}

const (
	captureLookupAttempts = 3
	captureLookupBackoff  = 150 * time.Millisecond
)

/* =========================
   CAPTURE / RECONCILE ORDER
========================= */

// CaptureOrder applies a payment confirmation to the matching order. The
// operation is idempotent: re-sending the same confirmation is a no-op, and a
// confirmation that contradicts an already-recorded outcome is rejected as a
// conflict instead of overwriting it.
func CaptureOrder(repo repository.OrderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/capture-order"
		defer handlePanic(c, route)

		var req captureOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}

		gatewayOrderID := strings.TrimSpace(req.RazorpayOrderID)
		if gatewayOrderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "missing required fields: razorpay_order_id"})
			return
		}
		paymentID := strings.TrimSpace(req.RazorpayPaymentID)

		status, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "unknown payment_status"})
			return
		}

		// A confirmation can outrun the visibility of its own order insert,
		// so a miss is retried briefly before it is reported as not found.
		var order *models.Order
		for attempt := 1; ; attempt++ {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
			order, err = repo.Reconcile(ctx, gatewayOrderID, paymentID, status)
			cancel()

			if !errors.Is(err, repository.ErrOrderNotFound) || attempt >= captureLookupAttempts {
				break
			}
			time.Sleep(captureLookupBackoff)
		}

		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			log.Printf("[%s] no order for gateway reference %s (client order_id %d)", route, gatewayOrderID, req.OrderID)
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "order not found"})
			return
		case errors.Is(err, repository.ErrStatusConflict):
			log.Printf("[%s] conflicting status %s for gateway reference %s, manual review required", route, status, gatewayOrderID)
			middleware.RecordOrderReconciled("conflict", "capture")
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "order already reconciled with a different status"})
			return
		case err != nil:
			log.Printf("[%s] reconcile failed: %v", route, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
			return
		}

		log.Printf("[%s] order %d reconciled to %s", route, order.ID, order.Status)
		middleware.RecordOrderReconciled(string(order.Status), "capture")

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "payment " + string(order.Status),
			"order_id": order.ID,
		})
	}
}
