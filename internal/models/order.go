package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// OrderStatus is the payment state of an order. Transitions are monotonic:
// pending moves to exactly one terminal state and never leaves it.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusCaptured OrderStatus = "captured"
	OrderStatusFailed   OrderStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCaptured || s == OrderStatusFailed
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
// Re-applying the current terminal status is allowed (idempotent no-op).
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	return s == OrderStatusPending && next.Terminal()
}

// OrderItem is one line of the purchase snapshot captured at order-creation
// time. It is a copy, not a reference: later catalog edits must not change it.
type OrderItem struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Variant   string  `json:"variant,omitempty"`
}

// OrderItemList stores the item snapshot as a single JSON column so the
// snapshot survives product deletions and schema drift in the catalog tables.
type OrderItemList []OrderItem

func (l OrderItemList) Value() (driver.Value, error) {
	if l == nil {
		l = OrderItemList{}
	}
	return json.Marshal(l)
}

func (l *OrderItemList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into OrderItemList", value)
	}
}

// Order is the persisted order row. RazorpayOrderID is the join key to the
// payment gateway's records and is assigned exactly once at creation.
type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName  string `gorm:"size:100" json:"firstName"`
	LastName   string `gorm:"size:100" json:"lastName"`
	Email      string `gorm:"size:255" json:"email"`
	Phone      string `gorm:"size:32" json:"phone,omitempty"`
	City       string `gorm:"size:100" json:"city,omitempty"`
	Apartment  string `gorm:"size:255" json:"apartment,omitempty"`
	PostalCode string `gorm:"size:20" json:"postalCode,omitempty"`
	Note       string `gorm:"type:text" json:"note,omitempty"`

	Amount   float64       `json:"amount"`
	Currency string        `gorm:"size:10" json:"currency"`
	Items    OrderItemList `gorm:"type:json" json:"items"`

	RazorpayOrderID   string      `gorm:"size:64;uniqueIndex" json:"razorpayOrderId"`
	RazorpayPaymentID string      `gorm:"size:64" json:"razorpayPaymentId,omitempty"`
	Status            OrderStatus `gorm:"size:20;index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
