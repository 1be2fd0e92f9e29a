package scoring

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithBlendWeights sets the composite weights. Negative weights, or both
// weights being zero, leave the defaults in place.
func WithBlendWeights(match, complementarity float64) Option {
	return func(s *Scorer) {
		if match < 0 || complementarity < 0 || match+complementarity == 0 {
			return
		}
		s.matchWeight = match
		s.complementarityWeight = complementarity
	}
}
