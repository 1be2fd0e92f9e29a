// Package service wires the matching engines together with identity checks,
// logging and metrics for use by the command line and other callers.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/okian/squad/internal/domain/dedupe"
	"github.com/okian/squad/internal/domain/formation"
	"github.com/okian/squad/internal/domain/mentor"
	"github.com/okian/squad/internal/domain/model"
	"github.com/okian/squad/internal/domain/scoring"
	"github.com/okian/squad/internal/domain/types"
	"github.com/okian/squad/pkg/logger"
	"github.com/okian/squad/pkg/metrics"
)

// Operation labels used for invalid argument metrics.
const (
	opFormTeams     = "form_teams"
	opBestMentor    = "best_mentor"
	opAssignMentors = "assign_mentors"

	nanosecondsPerMillisecond = 1e6
)

// Formation is the result of one FormTeams call.
type Formation struct {
	RunID    string `json:"run_id"`
	TeamSize int    `json:"team_size"`
	formation.Result
}

// Assignment pairs a student with the best mentor found for them.
type Assignment struct {
	Student model.Candidate `json:"student"`
	// Mentor is nil when the pool was empty.
	Mentor      *model.Mentor `json:"mentor,omitempty"`
	Score       float64       `json:"score"`
	Suggestions []types.Entry `json:"suggestions,omitempty"`
}

// Service runs team formation and mentor matching. It holds no per-call
// state and is safe for concurrent use with distinct inputs.
type Service struct {
	logger logger.Logger

	// Configuration
	matchWeight           float64
	complementarityWeight float64
	mentorSuggestions     int

	// Core components
	scorer  *scoring.Scorer
	engine  *formation.Engine
	matcher *mentor.Matcher

	newRunID func() string
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBlendWeights sets the composite weights used to rank candidates.
func WithBlendWeights(match, complementarity float64) Option {
	return func(s *Service) {
		s.matchWeight = match
		s.complementarityWeight = complementarity
	}
}

// WithMentorSuggestions sets how many ranked mentors AssignMentors attaches
// to each assignment. Zero disables suggestions.
func WithMentorSuggestions(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.mentorSuggestions = n
		}
	}
}

// WithRunIDGenerator overrides run id generation.
func WithRunIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newRunID = fn
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		logger:                logger.New(io.Discard, slog.LevelError),
		matchWeight:           0.7,
		complementarityWeight: 0.3,
		newRunID:              uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.scorer = scoring.NewScorer(scoring.WithBlendWeights(s.matchWeight, s.complementarityWeight))
	s.engine = formation.NewEngine(formation.WithScorer(s.scorer))
	s.matcher = mentor.NewMatcher(mentor.WithMatchFunc(s.scorer.Match))
	return s
}

// FormTeams partitions pool into teams of teamSize. Candidate ids must be
// unique within the pool.
func (s *Service) FormTeams(ctx context.Context, pool []model.Candidate, teamSize int, requirement model.SkillProfile) (Formation, error) {
	runID := s.newRunID()
	log := s.logger.Named("formation").With(logger.String("run_id", runID))

	ids := make([]string, len(pool))
	for i, c := range pool {
		ids[i] = c.ID
	}
	if dup, ok := dedupe.FirstDuplicate(ctx, ids); ok {
		err := fmt.Errorf("%w: candidate id %q appears more than once", model.ErrInvalidArgument, dup)
		s.reject(ctx, log, opFormTeams, err)
		return Formation{}, err
	}

	start := time.Now()
	res, err := s.engine.FormTeams(pool, teamSize, requirement)
	if err != nil {
		s.reject(ctx, log, opFormTeams, err)
		return Formation{}, err
	}
	latencyMs := float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond

	assigned := len(pool) - len(res.Remainder)
	metrics.RecordFormation(latencyMs, len(pool), len(res.Teams), assigned, len(res.Remainder))
	for i, team := range res.Teams {
		metrics.RecordTeamMatchScore(team.MatchScore)
		log.Debug(ctx, "team formed",
			logger.Int("index", i),
			logger.Any("members", team.MemberIDs()),
			logger.Float64("match_score", team.MatchScore),
		)
	}

	log.Info(ctx, "formation completed",
		logger.Int("pool", len(pool)),
		logger.Int("team_size", teamSize),
		logger.Int("teams", len(res.Teams)),
		logger.Int("unassigned", len(res.Remainder)),
		logger.Float64("latency_ms", latencyMs),
	)
	if len(res.Remainder) > 0 {
		log.Warn(ctx, "candidates left without a team", logger.Int("count", len(res.Remainder)))
	}

	return Formation{RunID: runID, TeamSize: teamSize, Result: res}, nil
}

// BestMentor returns the best mentor for student, or false for an empty pool.
func (s *Service) BestMentor(ctx context.Context, student model.SkillProfile, pool []model.Mentor) (model.Mentor, bool, error) {
	log := s.logger.Named("mentor").With(logger.String("run_id", s.newRunID()))

	if err := checkMentorIDs(ctx, pool); err != nil {
		s.reject(ctx, log, opBestMentor, err)
		return model.Mentor{}, false, err
	}

	best, ok, err := s.lookup(ctx, log, student, pool)
	if err != nil {
		s.reject(ctx, log, opBestMentor, err)
		return model.Mentor{}, false, err
	}
	return best, ok, nil
}

// AssignMentors finds the best mentor for each student. Mentors may be
// assigned to several students.
func (s *Service) AssignMentors(ctx context.Context, students []model.Candidate, pool []model.Mentor) ([]Assignment, error) {
	log := s.logger.Named("mentor").With(logger.String("run_id", s.newRunID()))

	ids := make([]string, len(students))
	for i, st := range students {
		ids[i] = st.ID
	}
	if dup, ok := dedupe.FirstDuplicate(ctx, ids); ok {
		err := fmt.Errorf("%w: student id %q appears more than once", model.ErrInvalidArgument, dup)
		s.reject(ctx, log, opAssignMentors, err)
		return nil, err
	}
	if err := checkMentorIDs(ctx, pool); err != nil {
		s.reject(ctx, log, opAssignMentors, err)
		return nil, err
	}

	out := make([]Assignment, 0, len(students))
	for _, st := range students {
		best, ok, err := s.lookup(ctx, log, st.Skills, pool)
		if err != nil {
			err = fmt.Errorf("student %q: %w", st.ID, err)
			s.reject(ctx, log, opAssignMentors, err)
			return nil, err
		}

		a := Assignment{Student: st}
		if ok {
			a.Mentor = &best
			a.Score = s.matcher.Score(best, st.Skills)
		}
		if s.mentorSuggestions > 0 {
			a.Suggestions, err = s.matcher.Rank(st.Skills, pool, s.mentorSuggestions)
			if err != nil {
				return nil, fmt.Errorf("student %q: %w", st.ID, err)
			}
		}
		out = append(out, a)
	}

	log.Info(ctx, "mentor assignment completed",
		logger.Int("students", len(students)),
		logger.Int("mentors", len(pool)),
	)
	return out, nil
}

func (s *Service) lookup(ctx context.Context, log logger.Logger, student model.SkillProfile, pool []model.Mentor) (model.Mentor, bool, error) {
	start := time.Now()
	best, ok, err := s.matcher.Best(student, pool)
	if err != nil {
		return model.Mentor{}, false, err
	}
	latencyMs := float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond

	var score float64
	if ok {
		score = s.matcher.Score(best, student)
	}
	metrics.RecordMentorLookup(latencyMs, ok, score)
	log.Debug(ctx, "mentor lookup",
		logger.Bool("found", ok),
		logger.String("mentor_id", best.ID),
		logger.Float64("score", score),
	)
	return best, ok, nil
}

func (s *Service) reject(ctx context.Context, log logger.Logger, op string, err error) {
	if errors.Is(err, model.ErrInvalidArgument) {
		metrics.RecordInvalidArgument(op)
	}
	log.Warn(ctx, "request rejected",
		logger.String("operation", op),
		logger.Error(err),
	)
}

func checkMentorIDs(ctx context.Context, pool []model.Mentor) error {
	ids := make([]string, len(pool))
	for i, m := range pool {
		ids[i] = m.ID
	}
	if dup, ok := dedupe.FirstDuplicate(ctx, ids); ok {
		return fmt.Errorf("%w: mentor id %q appears more than once", model.ErrInvalidArgument, dup)
	}
	return nil
}
