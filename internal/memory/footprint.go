package memory

import (
	"math"

	"vramfit/pkg/types"
)

// Footprint holds the optional memory-model inputs of a variant.
type Footprint struct {
	WeightsGiB          *float64
	RuntimeOverheadGiB  *float64
	KVBytesPerTokenOpt  *float64
	KVBytesPerTokenCons *float64
}

// Estimate is a pair of VRAM estimates in GiB. Conservative is the higher,
// safer figure.
type Estimate struct {
	OptimisticGiB   float64
	ConservativeGiB float64
}

// FootprintOf extracts the memory-model inputs from catalog components.
func FootprintOf(c types.VariantComponents) Footprint {
	return Footprint{
		WeightsGiB:          c.WeightsVRAMGiB,
		RuntimeOverheadGiB:  c.RuntimeOverheadGiB,
		KVBytesPerTokenOpt:  c.KVBytesPerTokenOpt,
		KVBytesPerTokenCons: c.KVBytesPerTokenCons,
	}
}

// Complete reports whether all four inputs are present and finite.
func (f Footprint) Complete() bool {
	for _, p := range []*float64{f.WeightsGiB, f.RuntimeOverheadGiB, f.KVBytesPerTokenOpt, f.KVBytesPerTokenCons} {
		if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
			return false
		}
	}
	return true
}

// Estimate computes both estimates. ok is false when an input is missing;
// callers must treat that as "cannot estimate", not as zero.
func (f Footprint) Estimate(contextLength int, mode KVMode) (Estimate, bool) {
	if !f.Complete() {
		return Estimate{}, false
	}
	return Estimate{
		OptimisticGiB:   EstimateVRAM(*f.WeightsGiB, *f.RuntimeOverheadGiB, *f.KVBytesPerTokenOpt, contextLength, mode),
		ConservativeGiB: EstimateVRAM(*f.WeightsGiB, *f.RuntimeOverheadGiB, *f.KVBytesPerTokenCons, contextLength, mode),
	}, true
}

// MaxContext returns the largest context that fits budgetGiB under the
// conservative per-token figure.
func (f Footprint) MaxContext(budgetGiB float64, mode KVMode) (int, bool) {
	if !f.Complete() {
		return 0, false
	}
	return MaxContextThatFits(budgetGiB, *f.WeightsGiB, *f.RuntimeOverheadGiB, *f.KVBytesPerTokenCons, mode), true
}
