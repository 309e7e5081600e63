package handlers

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parthbuilds/Shubha-Kuteer/internal/models"
)

// minorUnitMultiplier converts the store's base currency amount to the
// gateway's smallest subunit (rupees to paise). Applied exactly once at
// creation and never re-derived.
const minorUnitMultiplier = 100

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * minorUnitMultiplier))
}

// newReceiptID returns a receipt identifier unique across concurrent
// checkouts. The timestamp keeps receipts sortable; the random suffix removes
// the collision window a timestamp alone would have.
func newReceiptID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("rcpt_%d_%s", time.Now().UnixNano(), suffix)
}

// validateCheckout returns the names of the required fields missing from a
// checkout payload, in a stable order.
func validateCheckout(firstName, email string, amount float64) []string {
	var missing []string
	if amount <= 0 {
		missing = append(missing, "amount")
	}
	if strings.TrimSpace(firstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	return missing
}

var errUnknownPaymentStatus = errors.New("unknown payment status")

// mapPaymentStatus translates the status reported by the storefront or the
// gateway into a terminal order status.
func mapPaymentStatus(paymentStatus string) (models.OrderStatus, error) {
	switch strings.ToLower(strings.TrimSpace(paymentStatus)) {
	case "captured", "paid", "success":
		return models.OrderStatusCaptured, nil
	case "failed":
		return models.OrderStatusFailed, nil
	default:
		return "", errUnknownPaymentStatus
	}
}
