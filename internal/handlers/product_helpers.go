package handlers

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL slug from a product or category name when the admin
// leaves the slug field empty.
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugCleaner.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// validateSalePricing enforces the sale invariant: a product on sale must
// carry an origin price strictly above the charged price.
func validateSalePricing(price float64, onSale bool, originPrice float64) error {
	if price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if !onSale {
		return nil
	}
	if originPrice <= 0 {
		return fmt.Errorf("origin_price is required when on_sale is true")
	}
	if originPrice <= price {
		return fmt.Errorf("origin_price must be greater than price")
	}
	return nil
}

// discountPercent returns the rounded sale discount for display, 0 when the
// product is not on sale.
func discountPercent(price float64, onSale bool, originPrice float64) int {
	if !onSale || originPrice <= 0 || originPrice <= price {
		return 0
	}
	return int(math.Round((originPrice - price) / originPrice * 100))
}
