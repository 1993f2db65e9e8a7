package promofile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMapperMapPromos(t *testing.T) {
	config := &Config{
		Promos: []PromoEntry{
			{Code: " summer20 ", Description: "Summer season", DiscountPercent: 20, ValidFrom: "2026-06-01", ValidUntil: "2026-09-01", MaxUses: 1000},
			{Code: "VIP", DiscountPercent: 50},
		},
	}

	promos := NewMapper().MapPromos(config)
	if len(promos) != 2 {
		t.Fatalf("MapPromos() returned %d promos, want 2", len(promos))
	}

	if promos[0].Code != "SUMMER20" {
		t.Errorf("code = %q, want upper-cased trimmed SUMMER20", promos[0].Code)
	}
	if promos[0].ValidFrom.IsZero() || promos[0].ValidUntil.IsZero() {
		t.Error("validity window should be parsed")
	}
	if !promos[1].ValidFrom.IsZero() || !promos[1].ValidUntil.IsZero() {
		t.Error("missing dates mean an open window")
	}
}

func TestMapperSkipsInvalidEntries(t *testing.T) {
	config := &Config{
		Promos: []PromoEntry{
			{Code: "", DiscountPercent: 10},
			{Code: "ZERO", DiscountPercent: 0},
			{Code: "TOOMUCH", DiscountPercent: 150},
			{Code: "BADDATE", DiscountPercent: 10, ValidFrom: "June 1st"},
			{Code: "INVERTED", DiscountPercent: 10, ValidFrom: "2026-09-01", ValidUntil: "2026-06-01"},
			{Code: "DUP", DiscountPercent: 10},
			{Code: "dup", DiscountPercent: 15},
			{Code: "GOOD", DiscountPercent: 10},
		},
	}

	promos := NewMapper().MapPromos(config)
	if len(promos) != 2 {
		t.Fatalf("MapPromos() kept %d promos, want 2 (DUP and GOOD)", len(promos))
	}
	if promos[0].Code != "DUP" || promos[1].Code != "GOOD" {
		t.Errorf("kept %s,%s; want DUP,GOOD", promos[0].Code, promos[1].Code)
	}
}

func TestLoaderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "promos.yaml")
	content := `promos:
  - code: SUMMER20
    description: Summer season discount
    discount_percent: 20
    valid_from: "2026-06-01"
    valid_until: "2026-09-01"
    max_uses: 1000
  - code: OPENING
    discount_percent: 10
    disabled: true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(config.Promos) != 2 {
		t.Fatalf("Load() parsed %d entries, want 2", len(config.Promos))
	}
	if !config.Promos[1].Disabled {
		t.Error("disabled flag should be parsed")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := NewLoader("/does/not/exist.yaml").Load(); err == nil {
		t.Error("Load() on a missing file should error")
	}
}
