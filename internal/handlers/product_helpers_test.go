package handlers

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Banarasi Silk Saree", "banarasi-silk-saree"},
		{"  Kurta Set  ", "kurta-set"},
		{"Dupatta (Gold)", "dupatta-gold"},
	}
	for _, tt := range tests {
		if got := slugify(tt.name); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestValidateSalePricingRequiresOriginPrice(t *testing.T) {
	if err := validateSalePricing(100, true, 0); err == nil {
		t.Fatal("expected error when on_sale without origin_price")
	}
}

func TestValidateSalePricingOriginMustExceedPrice(t *testing.T) {
	for _, origin := range []float64{100, 80} {
		if err := validateSalePricing(100, true, origin); err == nil {
			t.Fatalf("expected error for origin_price=%v", origin)
		}
	}
	if err := validateSalePricing(100, true, 150); err != nil {
		t.Fatalf("valid sale pricing rejected: %v", err)
	}
	if err := validateSalePricing(100, false, 0); err != nil {
		t.Fatalf("non-sale product rejected: %v", err)
	}
}

func TestDiscountPercent(t *testing.T) {
	if got := discountPercent(75, true, 100); got != 25 {
		t.Fatalf("expected 25%% discount, got %d", got)
	}
	if got := discountPercent(100, false, 150); got != 0 {
		t.Fatalf("expected no discount when not on sale, got %d", got)
	}
}
