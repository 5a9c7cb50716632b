package services

import (
	"fmt"
	"math"

	"orders/internal/pkg/errs"
)

// FeeTier is one band of the marketplace's marginal service-fee schedule.
// Threshold is the band's width in cents; a Threshold of zero marks the
// final, unbounded band. Rate is the fraction of the band's slice of the
// subtotal charged as fee.
type FeeTier struct {
	Threshold int64
	Rate      float64
}

// DefaultFeeTiers returns the marketplace's standard fee schedule: small
// orders pay a higher marginal rate, the rate falls off for the part of the
// subtotal above each threshold.
func DefaultFeeTiers() []FeeTier {
	return []FeeTier{
		{Threshold: 5_000, Rate: 0.08},   // first $50
		{Threshold: 45_000, Rate: 0.055}, // up to $500
		{Threshold: 0, Rate: 0.04},       // remainder
	}
}

// CostBreakdown is the result of a cost computation. All amounts are cents.
type CostBreakdown struct {
	Subtotal   int64
	ServiceFee int64
	Tax        int64
	Total      int64
}

// PriceCalculator computes an order's cost breakdown. The service fee is
// marginal: each tier taxes only its own slice of the subtotal, like income
// tax brackets, so crossing a threshold never makes the total fee jump.
//
// Tax is computed externally (it depends on the buyer's country) and passed
// in; the calculator only folds it into the total.
type PriceCalculator struct {
	tiers []FeeTier
}

// NewPriceCalculator creates a calculator over an ordered fee schedule.
// Every band must have a positive width and a rate in [0, 1]; only the final
// band may be unbounded (zero threshold).
func NewPriceCalculator(tiers []FeeTier) (PriceCalculator, error) {
	if len(tiers) == 0 {
		return PriceCalculator{}, errs.NewValueIsRequiredError("fee tiers")
	}
	for i, tier := range tiers {
		if tier.Rate < 0 || tier.Rate > 1 {
			return PriceCalculator{}, errs.NewValueIsInvalidErrorWithCause("fee tier is invalid",
				fmt.Errorf("rate %v of tier %d is outside [0, 1]", tier.Rate, i))
		}
		if tier.Threshold < 0 {
			return PriceCalculator{}, errs.NewValueIsInvalidErrorWithCause("fee tier is invalid",
				fmt.Errorf("threshold %d of tier %d is negative", tier.Threshold, i))
		}
		if tier.Threshold == 0 && i != len(tiers)-1 {
			return PriceCalculator{}, errs.NewValueIsInvalidErrorWithCause("fee tier is invalid",
				fmt.Errorf("tier %d is unbounded but not last", i))
		}
	}

	return PriceCalculator{tiers: append([]FeeTier(nil), tiers...)}, nil
}

// Calculate computes the breakdown for quantity units at unitPrice, with the
// externally computed tax. Amounts are cents.
func (c PriceCalculator) Calculate(unitPrice int64, quantity int, tax int64) (CostBreakdown, error) {
	if quantity < 1 {
		return CostBreakdown{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return CostBreakdown{}, errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%d is negative", unitPrice))
	}
	if tax < 0 {
		return CostBreakdown{}, errs.NewValueIsInvalidErrorWithCause("tax is invalid",
			fmt.Errorf("%d is negative", tax))
	}

	subtotal := unitPrice * int64(quantity)
	fee := c.serviceFee(subtotal)

	return CostBreakdown{
		Subtotal:   subtotal,
		ServiceFee: fee,
		Tax:        tax,
		Total:      subtotal + fee + tax,
	}, nil
}

func (c PriceCalculator) serviceFee(subtotal int64) int64 {
	var fee int64
	remaining := subtotal
	for _, tier := range c.tiers {
		if remaining <= 0 {
			break
		}
		band := tier.Threshold
		if band == 0 || band > remaining {
			band = remaining
		}
		fee += int64(math.Round(float64(band) * tier.Rate))
		remaining -= band
	}
	return fee
}
