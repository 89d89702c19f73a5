// Package rank combines fit tier and community signals into an ordering score.
package rank

// Default tuning values. They are heuristics; changing them is a product
// decision. Override per deployment through Weights.
const (
	DefaultFitsConservative = 100.0
	DefaultFitsOptimistic   = 60.0
	DefaultNoFit            = -999.0
	DefaultUnknown          = 0.0
	DefaultConfidence       = 10.0
	DefaultQuality          = 4.0
	DefaultSpeed            = 0.8
	DefaultVoteFloor        = 0.0
	DefaultVoteCap          = 20.0
	DefaultMinTPSPenalty    = 50.0
	DefaultMaxTTFTPenalty   = 30.0
)

// Weights holds every constant of the ranking formula.
type Weights struct {
	// Base score per fit tier.
	FitsConservative float64
	FitsOptimistic   float64
	NoFit            float64
	Unknown          float64
	// Multiplier of ln(1 + trusted runs).
	Confidence float64
	// Multiplier of average quality when quality is preferred.
	Quality float64
	// Multiplier of p50 tokens/sec otherwise.
	Speed float64
	// Template vote sums are clamped to [VoteFloor, VoteCap].
	VoteFloor float64
	VoteCap   float64
	// Subtracted when a known signal misses a requested bound.
	MinTPSPenalty  float64
	MaxTTFTPenalty float64
}

// DefaultWeights returns the stock tuning.
func DefaultWeights() Weights {
	return Weights{
		FitsConservative: DefaultFitsConservative,
		FitsOptimistic:   DefaultFitsOptimistic,
		NoFit:            DefaultNoFit,
		Unknown:          DefaultUnknown,
		Confidence:       DefaultConfidence,
		Quality:          DefaultQuality,
		Speed:            DefaultSpeed,
		VoteFloor:        DefaultVoteFloor,
		VoteCap:          DefaultVoteCap,
		MinTPSPenalty:    DefaultMinTPSPenalty,
		MaxTTFTPenalty:   DefaultMaxTTFTPenalty,
	}
}
