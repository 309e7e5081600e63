package payment

import (
	"context"
	"fmt"
)

// GatewayOrder is the raw order object returned by the payment gateway. The
// create-order response passes it through to the storefront untouched, so it
// stays an opaque map instead of a typed struct.
type GatewayOrder map[string]interface{}

// ID returns the gateway-assigned order reference.
func (o GatewayOrder) ID() string {
	id, _ := o["id"].(string)
	return id
}

// Status returns the gateway-side order status ("created", "attempted", "paid").
func (o GatewayOrder) Status() string {
	s, _ := o["status"].(string)
	return s
}

// Gateway is the payment processor boundary. Amounts are in the smallest
// currency subunit (paise for INR); the conversion happens before this layer.
type Gateway interface {
	// CreateOrder registers a payment intent with the gateway and returns
	// the gateway order object, including the reference the storefront needs
	// to open the checkout widget.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (GatewayOrder, error)

	// FetchOrder reads the gateway's current view of an order. Used by the
	// reconciliation sweep to resolve orders stuck in pending.
	FetchOrder(ctx context.Context, gatewayOrderID string) (GatewayOrder, error)
}

// GatewayError marks a failure on the gateway side so handlers can surface it
// separately from validation and storage failures.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }
