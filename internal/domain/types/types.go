// Package types contains common types used across the application
package types

// Entry is one row of a ranked list, e.g. a mentor suggestion.
type Entry struct {
	Rank  int     `json:"rank"`
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Score float64 `json:"score"`
}
