// Package scoring computes similarity scores between skill profiles.
package scoring

import (
	"math"

	"github.com/okian/squad/internal/domain/model"
)

// Scoring constants.
const (
	// MaxLevel is the top of the nominal skill scale.
	MaxLevel = 5

	defaultMatchWeight           = 0.7
	defaultComplementarityWeight = 0.3
)

// Normalize maps a raw level onto [0,1]: level/5, clamped.
func Normalize(level float64) float64 {
	return math.Max(0, math.Min(1, level/MaxLevel))
}

// Match scores how closely profile meets requirement, in [0,1]. Each required
// skill contributes its similarity weighted by the required level; skills only
// the profile holds are ignored. A requirement with no positive weight scores 0.
func Match(profile, requirement model.SkillProfile) float64 {
	var weighted, total float64
	requirement.Each(func(skill string, required float64) {
		similarity := 1 - math.Abs(Normalize(required)-Normalize(profile.Level(skill)))
		weighted += similarity * required
		total += required
	})
	if total <= 0 {
		return 0
	}
	return weighted / total
}

// Complementarity scores how far candidate's skills exceed aggregate. The
// denominator is the number of skills the candidate holds, whether or not
// each one exceeds the aggregate.
func Complementarity(candidate, aggregate model.SkillProfile) float64 {
	var sum float64
	var count int
	candidate.Each(func(skill string, level float64) {
		if team := aggregate.Level(skill); level > team {
			sum += (level - team) / MaxLevel
		}
		count++
	})
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Scorer blends Match and Complementarity into a single ranking value.
// A Scorer is immutable and safe for concurrent use.
type Scorer struct {
	matchWeight           float64
	complementarityWeight float64
}

// NewScorer creates a scorer with the default 0.7/0.3 blend unless overridden.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		matchWeight:           defaultMatchWeight,
		complementarityWeight: defaultComplementarityWeight,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Composite returns the blended score of a against b. b plays both the
// requirement role for Match and the aggregate role for Complementarity.
func (s *Scorer) Composite(a, b model.SkillProfile) float64 {
	return s.matchWeight*Match(a, b) + s.complementarityWeight*Complementarity(a, b)
}

// Match delegates to the package-level Match.
func (s *Scorer) Match(profile, requirement model.SkillProfile) float64 {
	return Match(profile, requirement)
}

// Weights returns the match and complementarity blend weights.
func (s *Scorer) Weights() (match, complementarity float64) {
	return s.matchWeight, s.complementarityWeight
}

var defaultScorer = NewScorer()

// Composite blends with the default weights.
func Composite(a, b model.SkillProfile) float64 {
	return defaultScorer.Composite(a, b)
}
