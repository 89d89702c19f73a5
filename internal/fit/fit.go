// Package fit classifies VRAM estimates against a budget.
package fit

import "math"

// Tier is the fit classification of a variant under a budget.
type Tier string

const (
	// Unknown means no usable budget was given.
	Unknown Tier = "unknown"
	// FitsConservative means even the higher estimate fits.
	FitsConservative Tier = "fits_cons"
	// FitsOptimistic means only the lower estimate fits.
	FitsOptimistic Tier = "fits_opt"
	// NoFit means neither estimate fits.
	NoFit Tier = "no_fit"
)

// Classify compares the conservative (higher) and optimistic (lower)
// estimates with budget. A budget that is not positive yields Unknown.
func Classify(conservativeGiB, optimisticGiB, budgetGiB float64) Tier {
	if math.IsNaN(budgetGiB) || budgetGiB <= 0 {
		return Unknown
	}
	if conservativeGiB <= budgetGiB {
		return FitsConservative
	}
	if optimisticGiB <= budgetGiB {
		return FitsOptimistic
	}
	return NoFit
}

// Strictness orders the budget-derived tiers: FitsConservative > FitsOptimistic > NoFit.
// Unknown is not budget-derived and reports -1.
func (t Tier) Strictness() int {
	switch t {
	case FitsConservative:
		return 2
	case FitsOptimistic:
		return 1
	case NoFit:
		return 0
	default:
		return -1
	}
}

func (t Tier) String() string { return string(t) }
