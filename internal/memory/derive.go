package memory

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"vramfit/pkg/types"
)

// Weights are loaded with ~5% allocator/graph overhead on top of file size.
const weightsOverheadFactor = 1.05

// Runtime overhead bounds in GiB.
const (
	runtimeOverheadMinGiB = 0.8
	runtimeOverheadMaxGiB = 8.0
	runtimeOverheadPerGiB = 0.02
)

// fp16 bytes per KV element; derived KV figures are fp16 basis values.
const fp16BytesPerElem = 2.0

var (
	moeTierRe   = regexp.MustCompile(`(?i):(\d+)x(\d+(?:\.\d+)?)b\b`)
	denseTierRe = regexp.MustCompile(`(?i):(\d+(?:\.\d+)?)b\b`)
	milliTierRe = regexp.MustCompile(`(?i):(\d+(?:\.\d+)?)m\b`)
)

// Confidence grades a derived estimate.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
)

// tierProfile approximates the attention geometry of a parameter tier.
type tierProfile struct {
	layers     int
	dModel     int
	gqaOpt     float64
	gqaCons    float64
	confidence Confidence
	note       string
}

func profileFor(paramsB *float64) tierProfile {
	if paramsB == nil {
		return tierProfile{40, 5120, 1.0, 1.0, ConfidenceLow, "tier unknown; using ~13B proxy for KV sizing"}
	}
	switch b := *paramsB; {
	case b <= 3:
		return tierProfile{26, 3072, 1.0, 1.0, ConfidenceMedium, "~3B profile"}
	case b <= 9:
		return tierProfile{32, 4096, 1.0, 1.0, ConfidenceMedium, "~7-8B profile"}
	case b <= 15:
		return tierProfile{40, 5120, 1.0, 1.0, ConfidenceMedium, "~13-14B profile"}
	case b <= 40:
		return tierProfile{48, 8192, 0.5, 1.0, ConfidenceMedium, "~30-34B profile (GQA optimistic)"}
	case b <= 80:
		return tierProfile{80, 8192, 0.25, 1.0, ConfidenceMedium, "~70B profile (GQA optimistic)"}
	default:
		return tierProfile{80, 10240, 0.25, 1.0, ConfidenceMedium, ">100B profile (GQA optimistic)"}
	}
}

// ParseParamTier infers the parameter count (billions) from a tag such as
// "mixtral:8x7b" (56), "qwen2.5:0.5b" or "smollm:360m". It returns nil when
// the tag carries no size.
func ParseParamTier(tag string) *float64 {
	if m := moeTierRe.FindStringSubmatch(tag); m != nil {
		experts, _ := strconv.ParseFloat(m[1], 64)
		each, _ := strconv.ParseFloat(m[2], 64)
		v := experts * each
		return &v
	}
	if m := denseTierRe.FindStringSubmatch(tag); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return &v
	}
	if m := milliTierRe.FindStringSubmatch(tag); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		v /= 1000
		return &v
	}
	return nil
}

// Derivation is a heuristic component estimate for a variant that has no
// exported components.
type Derivation struct {
	WeightsGiB          float64
	RuntimeOverheadGiB  float64
	KVBytesPerTokenOpt  float64
	KVBytesPerTokenCons float64
	ParamsB             *float64
	Confidence          Confidence
	Note                string
}

// DeriveComponents estimates memory-model inputs from the on-disk size and
// the tag. KV figures use the fp16 basis.
func DeriveComponents(sizeBytes int64, tag string) Derivation {
	raw := float64(sizeBytes) / GiB
	runtime := math.Min(runtimeOverheadMaxGiB, math.Max(runtimeOverheadMinGiB, runtimeOverheadMinGiB+runtimeOverheadPerGiB*raw))

	params := ParseParamTier(tag)
	p := profileFor(params)
	perLayer := 2.0 * float64(p.layers) * float64(p.dModel) * fp16BytesPerElem

	return Derivation{
		WeightsGiB:          raw * weightsOverheadFactor,
		RuntimeOverheadGiB:  runtime,
		KVBytesPerTokenOpt:  perLayer * p.gqaOpt,
		KVBytesPerTokenCons: perLayer * p.gqaCons,
		ParamsB:             params,
		Confidence:          p.confidence,
		Note:                fmt.Sprintf("derived: weights from catalog size; KV from tier heuristics (%s)", p.note),
	}
}

// Footprint returns d as memory-model inputs.
func (d Derivation) Footprint() Footprint {
	return FootprintOf(d.Components(""))
}

// Components returns d as catalog components for variantID.
func (d Derivation) Components(variantID string) types.VariantComponents {
	return types.VariantComponents{
		VariantID:           variantID,
		WeightsVRAMGiB:      types.Float(d.WeightsGiB),
		RuntimeOverheadGiB:  types.Float(d.RuntimeOverheadGiB),
		KVBytesPerTokenOpt:  types.Float(d.KVBytesPerTokenOpt),
		KVBytesPerTokenCons: types.Float(d.KVBytesPerTokenCons),
		KVCacheType:         string(KVModeFP16),
		Derived:             true,
	}
}
