package handlers

import (
	"testing"

	"github.com/parthbuilds/Shubha-Kuteer/internal/models"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{500, 50000},
		{99.99, 9999},
		{0.01, 1},
		{1234.56, 123456},
	}
	for _, tt := range tests {
		if got := toMinorUnits(tt.amount); got != tt.want {
			t.Errorf("toMinorUnits(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestValidateCheckoutMissingFields(t *testing.T) {
	missing := validateCheckout("", "", 0)
	if len(missing) != 3 {
		t.Fatalf("expected 3 missing fields, got %v", missing)
	}
	if missing[0] != "amount" || missing[1] != "first_name" || missing[2] != "email" {
		t.Fatalf("unexpected order of missing fields: %v", missing)
	}

	if missing := validateCheckout("Asha", "a@x.com", 500); len(missing) != 0 {
		t.Fatalf("valid payload reported missing fields: %v", missing)
	}

	if missing := validateCheckout("Asha", "", 500); len(missing) != 1 || missing[0] != "email" {
		t.Fatalf("expected only email missing, got %v", missing)
	}
}

func TestNewReceiptIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := newReceiptID()
		if seen[id] {
			t.Fatalf("duplicate receipt id %s", id)
		}
		seen[id] = true
	}
}

func TestMapPaymentStatus(t *testing.T) {
	captured := []string{"captured", "Captured", "paid", "success"}
	for _, s := range captured {
		status, err := mapPaymentStatus(s)
		if err != nil || status != models.OrderStatusCaptured {
			t.Errorf("mapPaymentStatus(%q) = %v, %v", s, status, err)
		}
	}

	status, err := mapPaymentStatus("failed")
	if err != nil || status != models.OrderStatusFailed {
		t.Errorf("mapPaymentStatus(failed) = %v, %v", status, err)
	}

	if _, err := mapPaymentStatus("refunded"); err == nil {
		t.Error("expected error for unknown payment status")
	}
	if _, err := mapPaymentStatus(""); err == nil {
		t.Error("expected error for empty payment status")
	}
}
