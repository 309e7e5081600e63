package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/parthbuilds/Shubha-Kuteer/internal/models"
)

var (
	// ErrOrderNotFound means no order row matches the given identifier.
	ErrOrderNotFound = errors.New("order not found")

	// ErrStatusConflict means a reconciliation event tried to move an order
	// from one terminal status to a different one. The row is left untouched;
	// the event needs manual review.
	ErrStatusConflict = errors.New("order already reconciled with a different status")
)

// OrderRepository is the injected capability over the orders table. Handlers
// and the sweep depend on this interface, never on *gorm.DB directly.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)

	// Reconcile applies a payment outcome to the order identified by its
	// gateway reference. It is idempotent: re-applying the recorded terminal
	// status is a no-op, a different terminal status returns
	// ErrStatusConflict, and a missing order returns ErrOrderNotFound.
	Reconcile(ctx context.Context, gatewayOrderID, paymentID string, status models.OrderStatus) (*models.Order, error)

	// ListStuckPending returns up to limit orders still pending that were
	// created before cutoff, oldest first. Feed for the reconciliation sweep.
	ListStuckPending(ctx context.Context, cutoff time.Time, limit int) ([]models.Order, error)

	Delete(ctx context.Context, id uint) error
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("razorpay_order_id = ?", gatewayOrderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&orders).Error
	return orders, err
}

func (r *gormOrderRepository) Reconcile(ctx context.Context, gatewayOrderID, paymentID string, status models.OrderStatus) (*models.Order, error) {
	if !status.Terminal() {
		return nil, fmt.Errorf("cannot reconcile into non-terminal status %q", status)
	}

	order, err := r.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, ErrStatusConflict
	}
	if order.Status == status {
		// duplicate or stale delivery of the same outcome
		return order, nil
	}

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if paymentID != "" {
		updates["razorpay_payment_id"] = paymentID
	}

	// The status guard in the WHERE clause makes concurrent reconciliations
	// race-safe: only one conditional UPDATE can win.
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("razorpay_order_id = ? AND status = ?", gatewayOrderID, models.OrderStatusPending).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Lost the race. Re-read and decide against what actually landed.
		order, err = r.GetByGatewayOrderID(ctx, gatewayOrderID)
		if err != nil {
			return nil, err
		}
		if order.Status == status {
			return order, nil
		}
		return nil, ErrStatusConflict
	}

	return r.GetByGatewayOrderID(ctx, gatewayOrderID)
}

func (r *gormOrderRepository) ListStuckPending(ctx context.Context, cutoff time.Time, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", models.OrderStatusPending, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *gormOrderRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
