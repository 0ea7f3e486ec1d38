package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPizzaPriceForSize(t *testing.T) {
	base, err := NewMoneyFromString("8.50")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	pizza := &Pizza{BasePrice: base}

	cases := []struct {
		multiplier string
		want       string
	}{
		{"0.80", "6.80"},
		{"1.00", "8.50"},
		{"1.30", "11.05"},
		// 四舍五入到分
		{"1.15", "9.78"},
	}
	for _, tc := range cases {
		size := &PizzaSize{PriceMultiplier: decimal.RequireFromString(tc.multiplier)}
		if got := pizza.PriceForSize(size); got.String() != tc.want {
			t.Fatalf("multiplier %s: want %s got %s", tc.multiplier, tc.want, got.String())
		}
	}

	if got := pizza.PriceForSize(nil); got.String() != "8.50" {
		t.Fatalf("nil size should return base price, got %s", got.String())
	}
}

func TestCartItemLineTotal(t *testing.T) {
	unit, _ := NewMoneyFromString("12.00")
	extra, _ := NewMoneyFromString("1.50")
	item := &CartItem{Quantity: 2, UnitPrice: unit, ExtraCost: extra}
	if got := item.LineTotal(); got.String() != "27.00" {
		t.Fatalf("line total want 27.00 got %s", got.String())
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m, err := NewMoneyFromString("9.5")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal money failed: %v", err)
	}
	if string(out) != `"9.50"` {
		t.Fatalf(`marshal want "9.50" got %s`, string(out))
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"11.05"`), &fromString); err != nil {
		t.Fatalf("unmarshal string money failed: %v", err)
	}
	if fromString.String() != "11.05" {
		t.Fatalf("unmarshal string want 11.05 got %s", fromString.String())
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte(`11.055`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number money failed: %v", err)
	}
	if fromNumber.String() != "11.06" {
		t.Fatalf("unmarshal number want 11.06 got %s", fromNumber.String())
	}
}
