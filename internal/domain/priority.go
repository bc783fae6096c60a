package domain

import "strings"

// Priority tier of a pickup point.
type Priority string

const (
	PriorityRed    Priority = "red"
	PriorityYellow Priority = "yellow"
	PriorityGreen  Priority = "green"
)

// ParsePriority returns the tier for one of the exact names red, yellow, green.
// Matching ignores surrounding whitespace and case.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityRed:
		return PriorityRed, true
	case PriorityYellow:
		return PriorityYellow, true
	case PriorityGreen:
		return PriorityGreen, true
	}
	return PriorityGreen, false
}

// Valid reports whether p is one of the three tiers.
func (p Priority) Valid() bool {
	return p == PriorityRed || p == PriorityYellow || p == PriorityGreen
}

// Rank orders tiers for processing: red=0, yellow=1, green=2.
// Unknown values rank with green.
func (p Priority) Rank() int {
	switch p {
	case PriorityRed:
		return 0
	case PriorityYellow:
		return 1
	default:
		return 2
	}
}

// Urgency is the assignment boost for the tier: 1 for red, 0.5 for yellow, 0 otherwise.
func (p Priority) Urgency() float64 {
	switch p {
	case PriorityRed:
		return 1
	case PriorityYellow:
		return 0.5
	default:
		return 0
	}
}

// PriorityCounts is a per-tier tally of stops or points.
type PriorityCounts struct {
	Red    int
	Yellow int
	Green  int
}

func (c *PriorityCounts) Add(p Priority) {
	switch p {
	case PriorityRed:
		c.Red++
	case PriorityYellow:
		c.Yellow++
	default:
		c.Green++
	}
}

func (c PriorityCounts) Total() int { return c.Red + c.Yellow + c.Green }
