// Package roster reads candidate, mentor and requirement records from YAML.
package roster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/okian/squad/internal/domain/model"
	"gopkg.in/yaml.v3"
)

const defaultMaxBytes = 8 << 20

// Roster is the input bundle for one engine invocation.
type Roster struct {
	Requirement model.SkillProfile `yaml:"requirement"`
	Candidates  []model.Candidate  `yaml:"candidates"`
	Mentors     []model.Mentor     `yaml:"mentors"`
	Students    []model.Candidate  `yaml:"students"`
}

// Student returns the student with the given id.
func (r *Roster) Student(id string) (model.Candidate, bool) {
	for _, s := range r.Students {
		if s.ID == id {
			return s, true
		}
	}
	return model.Candidate{}, false
}

// Source provides rosters.
type Source interface {
	Load(ctx context.Context) (*Roster, error)
}

// FileSource loads a roster from a YAML file.
type FileSource struct {
	path     string
	maxBytes int64
}

// NewFileSource creates a source reading path.
func NewFileSource(path string, opts ...Option) *FileSource {
	s := &FileSource{
		path:     path,
		maxBytes: defaultMaxBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Path returns the file the source reads.
func (s *FileSource) Path() string { return s.path }

// Load reads and decodes the file.
func (s *FileSource) Load(ctx context.Context) (*Roster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRosterRead, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRosterRead, s.path, err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrRosterRead, s.path, s.maxBytes)
	}

	r, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return r, nil
}

// Decode parses a single YAML roster document. Unknown keys are rejected.
func Decode(in io.Reader) (*Roster, error) {
	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)

	var r Roster
	if err := dec.Decode(&r); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrRosterDecode)
		}
		return nil, fmt.Errorf("%w: %w", ErrRosterDecode, err)
	}
	return &r, nil
}
