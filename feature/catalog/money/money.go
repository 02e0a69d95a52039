// Package money converts decimal prices into integer minor currency units.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Strategy rounds an amount already expressed in minor units to an integer.
type Strategy interface {
	Name() string
	Round(amount decimal.Decimal) int64
}

// HalfUp rounds half away from zero.
type HalfUp struct{}

func (HalfUp) Name() string { return "half_up" }

func (HalfUp) Round(amount decimal.Decimal) int64 {
	return amount.Round(0).IntPart()
}

// Bankers rounds half to even.
type Bankers struct{}

func (Bankers) Name() string { return "bankers" }

func (Bankers) Round(amount decimal.Decimal) int64 {
	return amount.RoundBank(0).IntPart()
}

// ByName returns the strategy registered under name. An empty name selects HalfUp.
func ByName(name string) (Strategy, error) {
	switch name {
	case "", "half_up":
		return HalfUp{}, nil
	case "bankers":
		return Bankers{}, nil
	default:
		return nil, fmt.Errorf("unknown rounding strategy %q", name)
	}
}

// ToMinorUnits converts a price in major units (e.g. 12.50) to minor units (1250).
func ToMinorUnits(s Strategy, price decimal.Decimal) int64 {
	return s.Round(price.Mul(hundred))
}
