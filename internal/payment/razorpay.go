package payment

import (
	"context"
	"errors"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway adapts the Razorpay SDK to the Gateway interface.
type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway builds the production gateway client. timeoutSeconds
// bounds every outbound call; a hung gateway must never hold a request open
// indefinitely.
func NewRazorpayGateway(keyID, keySecret string, timeoutSeconds int64) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)
	client.SetTimeout(int16(timeoutSeconds))
	return &RazorpayGateway{client: client}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, &GatewayError{Op: "create order", Err: err}
	}

	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, &GatewayError{Op: "create order", Err: err}
	}
	order := GatewayOrder(body)
	if order.ID() == "" {
		return nil, &GatewayError{Op: "create order", Err: errors.New("gateway returned no order id")}
	}
	return order, nil
}

func (g *RazorpayGateway) FetchOrder(ctx context.Context, gatewayOrderID string) (GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, &GatewayError{Op: "fetch order", Err: err}
	}

	body, err := g.client.Order.Fetch(gatewayOrderID, nil, nil)
	if err != nil {
		return nil, &GatewayError{Op: "fetch order", Err: err}
	}
	return GatewayOrder(body), nil
}
