// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"fmt"
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Skill is a single named skill level.
type Skill struct {
	Name  string  `json:"name" yaml:"name"`
	Level float64 `json:"level" yaml:"level"`
}

// SkillProfile maps skill names to levels (nominally 0-5). Iteration follows
// insertion order, so scoring and tie-breaking are reproducible.
//
// Copying a SkillProfile value shares the underlying storage; use Clone to
// get an independent profile. The zero value is an empty profile.
type SkillProfile struct {
	levels *orderedmap.OrderedMap[string, float64]
}

// NewSkillProfile builds a profile from skills in the given order. A repeated
// name keeps its first position and takes the last level.
func NewSkillProfile(skills ...Skill) SkillProfile {
	p := SkillProfile{levels: orderedmap.New[string, float64]()}
	for _, s := range skills {
		p.levels.Set(s.Name, s.Level)
	}
	return p
}

// Level returns the level for name, or 0 when the skill is absent.
func (p SkillProfile) Level(name string) float64 {
	level, _ := p.Lookup(name)
	return level
}

// Lookup returns the level for name and whether the profile holds it.
func (p SkillProfile) Lookup(name string) (float64, bool) {
	if p.levels == nil {
		return 0, false
	}
	return p.levels.Get(name)
}

// Set stores level for name. An existing skill keeps its position.
func (p *SkillProfile) Set(name string, level float64) {
	if p.levels == nil {
		p.levels = orderedmap.New[string, float64]()
	}
	p.levels.Set(name, level)
}

// Len returns the number of skills in the profile.
func (p SkillProfile) Len() int {
	if p.levels == nil {
		return 0
	}
	return p.levels.Len()
}

// Each calls fn for every skill in insertion order.
func (p SkillProfile) Each(fn func(name string, level float64)) {
	if p.levels == nil {
		return
	}
	for pair := p.levels.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Skills returns the profile as an ordered slice.
func (p SkillProfile) Skills() []Skill {
	out := make([]Skill, 0, p.Len())
	p.Each(func(name string, level float64) {
		out = append(out, Skill{Name: name, Level: level})
	})
	return out
}

// Clone returns an independent copy of the profile.
func (p SkillProfile) Clone() SkillProfile {
	out := NewSkillProfile()
	p.Each(func(name string, level float64) {
		out.levels.Set(name, level)
	})
	return out
}

// MergeMax returns a new profile holding, for every skill present in either
// profile, the greater of the two levels (absent counts as 0). Skills of p
// come first, followed by skills only other holds, in other's order.
func (p SkillProfile) MergeMax(other SkillProfile) SkillProfile {
	out := NewSkillProfile()
	p.Each(func(name string, level float64) {
		out.levels.Set(name, math.Max(level, other.Level(name)))
	})
	other.Each(func(name string, level float64) {
		if _, ok := out.levels.Get(name); !ok {
			out.levels.Set(name, math.Max(level, p.Level(name)))
		}
	})
	return out
}

// Validate reports a level that cannot take part in arithmetic. Out-of-range
// numbers are accepted; scorers clamp them.
func (p SkillProfile) Validate() error {
	var err error
	p.Each(func(name string, level float64) {
		if err == nil && math.IsNaN(level) {
			err = fmt.Errorf("%w: skill %q has a non-numeric level", ErrInvalidArgument, name)
		}
	})
	return err
}

// MarshalJSON encodes the profile as a JSON object in insertion order.
func (p SkillProfile) MarshalJSON() ([]byte, error) {
	if p.levels == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p.levels)
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (p *SkillProfile) UnmarshalJSON(data []byte) error {
	levels := orderedmap.New[string, float64]()
	if err := json.Unmarshal(data, levels); err != nil {
		return fmt.Errorf("%w: decode skill profile: %w", ErrInvalidArgument, err)
	}
	p.levels = levels
	return nil
}

// MarshalYAML encodes the profile as a YAML mapping in insertion order.
func (p SkillProfile) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	p.Each(func(name string, level float64) {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: formatLevel(level)},
		)
	})
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping of skill name to numeric level.
func (p *SkillProfile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*p = SkillProfile{}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: skill profile must be a mapping", ErrInvalidArgument, node.Line)
	}

	out := NewSkillProfile()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var level float64
		if err := value.Decode(&level); err != nil {
			return fmt.Errorf("%w: line %d: skill %q level %q is not numeric", ErrInvalidArgument, value.Line, key.Value, value.Value)
		}
		out.levels.Set(key.Value, level)
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*p = out
	return nil
}

func formatLevel(level float64) string {
	switch {
	case math.IsInf(level, 1):
		return ".inf"
	case math.IsInf(level, -1):
		return "-.inf"
	case math.IsNaN(level):
		return ".nan"
	}
	return fmt.Sprintf("%g", level)
}
