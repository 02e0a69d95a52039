package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		price   string
		halfUp  int64
		bankers int64
	}{
		{"12.50", 1250, 1250},
		{"9.99", 999, 999},
		{"0.125", 13, 12},
		{"0.135", 14, 14},
		{"10", 1000, 1000},
		{"0", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			d := decimal.RequireFromString(tt.price)
			assert.Equal(t, tt.halfUp, ToMinorUnits(HalfUp{}, d))
			assert.Equal(t, tt.bankers, ToMinorUnits(Bankers{}, d))
		})
	}
}

func TestByName(t *testing.T) {
	s, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, "half_up", s.Name())

	s, err = ByName("bankers")
	require.NoError(t, err)
	assert.Equal(t, "bankers", s.Name())

	_, err = ByName("floor")
	assert.Error(t, err)
}
