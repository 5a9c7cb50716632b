package services_test

import (
	"testing"

	"orders/internal/core/domain/services"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCalculator(t *testing.T) services.PriceCalculator {
	t.Helper()
	calc, err := services.NewPriceCalculator(services.DefaultFeeTiers())
	require.NoError(t, err)
	return calc
}

func TestNewPriceCalculator(t *testing.T) {
	t.Run("rejects an empty schedule", func(t *testing.T) {
		_, err := services.NewPriceCalculator(nil)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects a rate outside the unit interval", func(t *testing.T) {
		_, err := services.NewPriceCalculator([]services.FeeTier{{Threshold: 0, Rate: 1.5}})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects an unbounded band before the last", func(t *testing.T) {
		_, err := services.NewPriceCalculator([]services.FeeTier{
			{Threshold: 0, Rate: 0.1},
			{Threshold: 1000, Rate: 0.05},
		})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCalculate(t *testing.T) {
	calc := defaultCalculator(t)

	tests := []struct {
		name      string
		unitPrice int64
		quantity  int
		tax       int64
		wantFee   int64
		wantTotal int64
	}{
		{
			// subtotal 2000, entirely inside the first band at 8%
			name:      "small order stays in the first band",
			unitPrice: 2000, quantity: 1, tax: 0,
			wantFee: 160, wantTotal: 2160,
		},
		{
			// subtotal 5000 exactly fills the first band
			name:      "subtotal on the first threshold",
			unitPrice: 2500, quantity: 2, tax: 0,
			wantFee: 400, wantTotal: 5400,
		},
		{
			// subtotal 20000: 5000@8% + 15000@5.5% = 400 + 825
			name:      "mid-size order spans two bands",
			unitPrice: 10000, quantity: 2, tax: 100,
			wantFee: 1225, wantTotal: 21325,
		},
		{
			// subtotal 100000: 5000@8% + 45000@5.5% + 50000@4% = 400+2475+2000
			name:      "large order reaches the unbounded band",
			unitPrice: 100000, quantity: 1, tax: 2500,
			wantFee: 4875, wantTotal: 107375,
		},
		{
			name:      "free order carries no fee",
			unitPrice: 0, quantity: 3, tax: 0,
			wantFee: 0, wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Calculate(tt.unitPrice, tt.quantity, tt.tax)
			require.NoError(t, err)
			assert.Equal(t, tt.unitPrice*int64(tt.quantity), got.Subtotal)
			assert.Equal(t, tt.wantFee, got.ServiceFee)
			assert.Equal(t, tt.tax, got.Tax)
			assert.Equal(t, tt.wantTotal, got.Total)
		})
	}

	t.Run("rejects a non-positive quantity", func(t *testing.T) {
		_, err := calc.Calculate(1000, 0, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects negative tax", func(t *testing.T) {
		_, err := calc.Calculate(1000, 1, -1)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
