// Package mentor selects mentors whose skills best meet a student's needs.
package mentor

import (
	"fmt"
	"sort"

	"github.com/okian/squad/internal/domain/model"
	"github.com/okian/squad/internal/domain/scoring"
	"github.com/okian/squad/internal/domain/types"
)

// MatchFunc scores a mentor profile against the student profile, which acts
// as the requirement.
type MatchFunc func(mentor, student model.SkillProfile) float64

// Matcher picks mentors for students. It is stateless and safe for concurrent use.
type Matcher struct {
	match MatchFunc
}

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithMatchFunc overrides the scoring function.
func WithMatchFunc(fn MatchFunc) Option {
	return func(m *Matcher) {
		if fn != nil {
			m.match = fn
		}
	}
}

// NewMatcher creates a matcher scoring with scoring.Match.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{match: scoring.Match}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Best returns the mentor with the strictly highest match against student;
// the earliest mentor wins ties. The boolean is false for an empty pool.
func (m *Matcher) Best(student model.SkillProfile, pool []model.Mentor) (model.Mentor, bool, error) {
	if err := validate(student, pool); err != nil {
		return model.Mentor{}, false, err
	}
	if len(pool) == 0 {
		return model.Mentor{}, false, nil
	}

	best, bestScore := 0, m.match(pool[0].Skills, student)
	for i := 1; i < len(pool); i++ {
		if score := m.match(pool[i].Skills, student); score > bestScore {
			best, bestScore = i, score
		}
	}
	return pool[best], true, nil
}

// Score returns the match of a single mentor against student.
func (m *Matcher) Score(mentor model.Mentor, student model.SkillProfile) float64 {
	return m.match(mentor.Skills, student)
}

// Rank orders the pool by descending match, keeping pool order among equal
// scores, and returns at most limit entries. A non-positive limit returns all.
// The first entry is always the mentor Best would pick.
func (m *Matcher) Rank(student model.SkillProfile, pool []model.Mentor, limit int) ([]types.Entry, error) {
	if err := validate(student, pool); err != nil {
		return nil, err
	}

	entries := make([]types.Entry, len(pool))
	for i, mentor := range pool {
		entries[i] = types.Entry{
			ID:    mentor.ID,
			Name:  mentor.Name,
			Score: m.match(mentor.Skills, student),
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func validate(student model.SkillProfile, pool []model.Mentor) error {
	if err := student.Validate(); err != nil {
		return fmt.Errorf("student: %w", err)
	}
	for _, mentor := range pool {
		if err := mentor.Skills.Validate(); err != nil {
			return fmt.Errorf("mentor %q: %w", mentor.ID, err)
		}
	}
	return nil
}

var defaultMatcher = NewMatcher()

// Best runs the default matcher.
func Best(student model.SkillProfile, pool []model.Mentor) (model.Mentor, bool, error) {
	return defaultMatcher.Best(student, pool)
}
