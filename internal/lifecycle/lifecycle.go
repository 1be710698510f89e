// Package lifecycle holds the status machines for drafts, campaigns and users.
package lifecycle

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// Machine is a set of allowed from -> to status moves
type Machine struct {
	name  string
	edges map[string][]string
}

func newMachine(name string, edges map[string][]string) Machine {
	return Machine{name: name, edges: edges}
}

// Check returns ErrInvalidTransition, wrapped with a readable reason, when the
// move is not allowed.
func (m Machine) Check(from, to string) error {
	for _, next := range m.edges[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s cannot move from %s to %s", ErrInvalidTransition, m.name, from, to)
}

func (m Machine) CanTransition(from, to string) bool {
	return m.Check(from, to) == nil
}

// Draft: pending -> approved | rejected, approved -> sent. scheduled is terminal.
var Draft = newMachine("draft", map[string][]string{
	"pending":  {"approved", "rejected"},
	"approved": {"sent"},
})

// EditableDraftStatuses lists the statuses in which draft text may still change.
var EditableDraftStatuses = []string{"pending", "approved"}

// Campaign: active <-> paused <-> archived, and active -> archived.
// Un-archiving always lands on paused. completed is never entered or left.
var Campaign = newMachine("campaign", map[string][]string{
	"active":   {"paused", "archived"},
	"paused":   {"active", "archived"},
	"archived": {"paused"},
})

var User = newMachine("user", map[string][]string{
	"pending_approval": {"active"},
	"active":           {"banned"},
	"banned":           {"active"},
})
