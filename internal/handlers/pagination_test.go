package handlers

import "testing"

func TestParsePaginationDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 1 || limit != defaultPageSize {
		t.Fatalf("expected defaults 1/%d, got %d/%d", defaultPageSize, page, limit)
	}
}

func TestParsePaginationExplicit(t *testing.T) {
	page, limit, err := parsePaginationParams("3", "50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 3 || limit != 50 {
		t.Fatalf("expected 3/50, got %d/%d", page, limit)
	}
}

func TestParsePaginationRejectsInvalid(t *testing.T) {
	for _, tt := range []struct{ page, limit string }{
		{"0", ""},
		{"-1", ""},
		{"abc", ""},
		{"", "0"},
		{"", "-5"},
		{"", "xyz"},
	} {
		if _, _, err := parsePaginationParams(tt.page, tt.limit); err == nil {
			t.Errorf("page=%q limit=%q: expected error", tt.page, tt.limit)
		}
	}
}

func TestParsePaginationCapsLimit(t *testing.T) {
	_, limit, err := parsePaginationParams("", "10000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != maxPageSize {
		t.Fatalf("expected limit capped at %d, got %d", maxPageSize, limit)
	}
}
