package model

// Candidate is a person available for team formation.
type Candidate struct {
	ID     string       `json:"id" yaml:"id"`
	Name   string       `json:"name" yaml:"name"`
	Skills SkillProfile `json:"skills" yaml:"skills"`
}

// Mentor is a person available to coach a student. It mirrors Candidate but is
// scored against the student's profile instead of a team requirement.
type Mentor struct {
	ID     string       `json:"id" yaml:"id"`
	Name   string       `json:"name" yaml:"name"`
	Skills SkillProfile `json:"skills" yaml:"skills"`
}

// Team is a fixed-size group produced by one formation run.
type Team struct {
	// Members are kept in selection order; the first member is the seed.
	Members []Candidate `json:"members"`
	// Skills is the elementwise maximum of the members' profiles.
	Skills SkillProfile `json:"skills"`
	// MatchScore is the aggregate profile's match against the requirement.
	MatchScore float64 `json:"match_score"`
}

// MemberIDs returns the member ids in selection order.
func (t Team) MemberIDs() []string {
	ids := make([]string, len(t.Members))
	for i, m := range t.Members {
		ids[i] = m.ID
	}
	return ids
}
