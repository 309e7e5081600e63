package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/parthbuilds/Shubha-Kuteer/internal/middleware"
	"github.com/parthbuilds/Shubha-Kuteer/internal/models"
	"github.com/parthbuilds/Shubha-Kuteer/internal/payment"
	"github.com/parthbuilds/Shubha-Kuteer/internal/repository"
)

const sweepBatchSize = 50

// Reconciler is the background sweep that resolves orders stuck in pending.
// A capture callback can be lost (browser closed, network drop), leaving a
// paid order pending forever; the sweep asks the gateway directly and applies
// the same transition rules as the capture endpoint. Every pass is idempotent,
// so overlapping or repeated sweeps are harmless.
type Reconciler struct {
	repo     repository.OrderRepository
	gateway  payment.Gateway
	interval time.Duration
	cutoff   time.Duration
}

func NewReconciler(repo repository.OrderRepository, gateway payment.Gateway, interval, cutoff time.Duration) *Reconciler {
	return &Reconciler{
		repo:     repo,
		gateway:  gateway,
		interval: interval,
		cutoff:   cutoff,
	}
}

// Run loops until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Printf("[SWEEP] reconciliation sweep started, interval=%s cutoff=%s", r.interval, r.cutoff)

	for {
		select {
		case <-ctx.Done():
			log.Println("[SWEEP] reconciliation sweep stopped")
			return
		case <-ticker.C:
			resolved, err := r.Sweep(ctx)
			if err != nil {
				log.Printf("[SWEEP] [ERROR] sweep pass failed: %v", err)
				continue
			}
			if resolved > 0 {
				log.Printf("[SWEEP] resolved %d stuck orders", resolved)
			}
		}
	}
}

// Sweep runs one pass and returns how many orders it moved out of pending.
func (r *Reconciler) Sweep(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-r.cutoff)

	orders, err := r.repo.ListStuckPending(ctx, cutoff, sweepBatchSize)
	if err != nil {
		return 0, err
	}

	resolved := 0
	for _, order := range orders {
		if err := ctx.Err(); err != nil {
			return resolved, err
		}

		gatewayOrder, err := r.gateway.FetchOrder(ctx, order.RazorpayOrderID)
		if err != nil {
			log.Printf("[SWEEP] [ERROR] fetch %s failed: %v", order.RazorpayOrderID, err)
			continue
		}

		var status models.OrderStatus
		switch gatewayOrder.Status() {
		case "paid":
			status = models.OrderStatusCaptured
		default:
			// "created" and "attempted" orders may still complete; leave
			// them for a later pass.
			continue
		}

		if _, err := r.repo.Reconcile(ctx, order.RazorpayOrderID, "", status); err != nil {
			if errors.Is(err, repository.ErrStatusConflict) {
				log.Printf("[SWEEP] [ERROR] conflicting status for %s, manual review required", order.RazorpayOrderID)
				middleware.RecordOrderReconciled("conflict", "sweep")
				continue
			}
			log.Printf("[SWEEP] [ERROR] reconcile %s failed: %v", order.RazorpayOrderID, err)
			continue
		}

		middleware.RecordOrderReconciled(string(status), "sweep")
		resolved++
	}

	return resolved, nil
}
