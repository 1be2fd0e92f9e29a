// Package formation partitions a candidate pool into fixed-size teams by
// greedy selection against a requirement.
package formation

import (
	"fmt"
	"slices"

	"github.com/okian/squad/internal/domain/model"
	"github.com/okian/squad/internal/domain/scoring"
)

// Scorer ranks candidates during selection and scores finished teams.
type Scorer interface {
	Composite(profile, requirement model.SkillProfile) float64
	Match(profile, requirement model.SkillProfile) float64
}

// Result is the outcome of one formation run.
type Result struct {
	// Teams are in the order they were formed.
	Teams []model.Team `json:"teams"`
	// Remainder holds candidates left over when fewer than a full team
	// remained, in their input order.
	Remainder []model.Candidate `json:"remainder"`
}

// Engine forms teams. It holds no per-run state and is safe for concurrent
// use; each FormTeams call works on its own copy of the pool.
type Engine struct {
	scorer Scorer
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithScorer sets the scorer used for ranking and team scores.
func WithScorer(s Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// NewEngine creates an engine using the default composite scorer unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{scorer: scoring.NewScorer()}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// FormTeams builds as many teams of teamSize as the pool allows. Each team is
// seeded with the best-ranked remaining candidate and filled with the next
// best-ranked ones; ties go to the candidate that appears first. The pool
// slice is not modified.
func (e *Engine) FormTeams(pool []model.Candidate, teamSize int, requirement model.SkillProfile) (Result, error) {
	if teamSize <= 0 {
		return Result{}, fmt.Errorf("%w: team size must be positive, got %d", model.ErrInvalidArgument, teamSize)
	}
	if err := requirement.Validate(); err != nil {
		return Result{}, fmt.Errorf("requirement: %w", err)
	}
	for _, c := range pool {
		if err := c.Skills.Validate(); err != nil {
			return Result{}, fmt.Errorf("candidate %q: %w", c.ID, err)
		}
	}

	// Composite scores depend only on the candidate and the requirement, so
	// compute them once per candidate.
	scores := make([]float64, len(pool))
	for i, c := range pool {
		scores[i] = e.scorer.Composite(c.Skills, requirement)
	}

	// working holds indexes into pool that are still unassigned, in input order.
	working := make([]int, len(pool))
	for i := range working {
		working[i] = i
	}

	res := Result{Teams: []model.Team{}}
	for len(working) >= teamSize {
		var best int
		best, working = takeBest(working, scores)
		seed := pool[best]

		team := model.Team{
			Members: make([]model.Candidate, 0, teamSize),
			Skills:  seed.Skills.Clone(),
		}
		team.Members = append(team.Members, seed)

		for len(team.Members) < teamSize {
			best, working = takeBest(working, scores)
			member := pool[best]
			team.Members = append(team.Members, member)
			team.Skills = team.Skills.MergeMax(member.Skills)
		}

		team.MatchScore = e.scorer.Match(team.Skills, requirement)
		res.Teams = append(res.Teams, team)
	}

	res.Remainder = make([]model.Candidate, len(working))
	for i, idx := range working {
		res.Remainder[i] = pool[idx]
	}
	return res, nil
}

// takeBest removes and returns the working entry with the strictly greatest
// score; the first one seen wins ties. working must not be empty.
func takeBest(working []int, scores []float64) (int, []int) {
	pos := 0
	for i := 1; i < len(working); i++ {
		if scores[working[i]] > scores[working[pos]] {
			pos = i
		}
	}
	best := working[pos]
	return best, slices.Delete(working, pos, pos+1)
}

var defaultEngine = NewEngine()

// FormTeams runs the default engine.
func FormTeams(pool []model.Candidate, teamSize int, requirement model.SkillProfile) (Result, error) {
	return defaultEngine.FormTeams(pool, teamSize, requirement)
}
