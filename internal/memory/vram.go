package memory

import "math"

// GiB is the number of bytes in one gibibyte.
const GiB = 1 << 30

// EstimateVRAM returns the estimated VRAM in GiB for weights + runtime
// overhead + KV cache at contextLength tokens. kvBytesPerToken is the fp16
// basis; mode scales it. Negative context lengths count as zero.
func EstimateVRAM(weightsGiB, runtimeGiB, kvBytesPerToken float64, contextLength int, mode KVMode) float64 {
	if contextLength < 0 {
		contextLength = 0
	}
	kv := kvBytesPerToken * float64(contextLength) * mode.Factor() / GiB
	return weightsGiB + runtimeGiB + kv
}

// MaxContextThatFits returns the largest context length whose estimate stays
// within budgetGiB. It is 0 when weights and runtime alone use up the budget.
// A non-positive per-token cost leaves the context unbounded and saturates at
// math.MaxInt.
func MaxContextThatFits(budgetGiB, weightsGiB, runtimeGiB, kvBytesPerToken float64, mode KVMode) int {
	headroom := budgetGiB - weightsGiB - runtimeGiB
	if !(headroom > 0) {
		return 0
	}
	perToken := kvBytesPerToken * mode.Factor()
	if !(perToken > 0) {
		return math.MaxInt
	}
	n := math.Floor(headroom * GiB / perToken)
	if n >= math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
