package rank

import (
	"math"

	"vramfit/internal/fit"
)

// Signals are the per-variant inputs to the score. Nil pointers mean the
// signal is unknown.
type Signals struct {
	Tier            fit.Tier
	TrustedRuns     int64
	P50TPS          *float64
	P50TTFTMs       *float64
	AvgQuality      *float64
	TemplateVoteSum int64
}

// Preferences are the query-level ranking options.
type Preferences struct {
	PreferQuality bool
	MinTPS        *float64
	MaxTTFTMs     *float64
}

// Score returns the ordering score of s; higher is better. The value has no
// absolute meaning.
func (w Weights) Score(s Signals, p Preferences) float64 {
	score := w.TierBase(s.Tier)
	score += w.ConfidenceTerm(s.TrustedRuns)
	if p.PreferQuality {
		score += w.Quality * valueOrZero(s.AvgQuality)
	} else {
		score += w.Speed * valueOrZero(s.P50TPS)
	}
	score += w.VoteTerm(s.TemplateVoteSum)

	// Missing data never triggers a penalty.
	if p.MinTPS != nil && s.P50TPS != nil && *s.P50TPS < *p.MinTPS {
		score -= w.MinTPSPenalty
	}
	if p.MaxTTFTMs != nil && s.P50TTFTMs != nil && *s.P50TTFTMs > *p.MaxTTFTMs {
		score -= w.MaxTTFTPenalty
	}
	return score
}

// TierBase returns the base score of a tier.
func (w Weights) TierBase(t fit.Tier) float64 {
	switch t {
	case fit.FitsConservative:
		return w.FitsConservative
	case fit.FitsOptimistic:
		return w.FitsOptimistic
	case fit.NoFit:
		return w.NoFit
	default:
		return w.Unknown
	}
}

// ConfidenceTerm has diminishing returns in the run count; 0 runs add 0.
func (w Weights) ConfidenceTerm(trustedRuns int64) float64 {
	if trustedRuns <= 0 {
		return 0
	}
	return w.Confidence * math.Log1p(float64(trustedRuns))
}

// VoteTerm clamps the template vote sum to [VoteFloor, VoteCap].
func (w Weights) VoteTerm(voteSum int64) float64 {
	return math.Min(w.VoteCap, math.Max(w.VoteFloor, float64(voteSum)))
}

// Score ranks s with DefaultWeights.
func Score(s Signals, p Preferences) float64 {
	return DefaultWeights().Score(s, p)
}

// Less orders by descending score, then by ascending conservative VRAM so the
// smaller footprint wins a tie.
func Less(scoreA, consGiBA, scoreB, consGiBB float64) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	return consGiBA < consGiBB
}

func valueOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
