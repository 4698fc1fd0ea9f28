// Package workflow defines the lifecycle of every entity the console manages:
// its statuses, the named actions a user can take, and which statuses allow
// each action. The console derives its action buttons from these tables; the
// backends remain the authority on whether an action succeeds.
package workflow

import (
	"errors"
	"fmt"
)

// ErrActionNotAllowed is returned when an action is not permitted from a status.
var ErrActionNotAllowed = errors.New("action not allowed")

// Action is a user-triggerable operation on an entity.
type Action string

// Transition describes one action: the statuses it is allowed from and the
// status it leads to. An empty To leaves the status unchanged (edits, item
// changes, result entry).
type Transition[S ~string] struct {
	Action Action
	From   []S
	To     S
}

// Machine is the transition table for one entity type.
type Machine[S ~string] struct {
	name        string
	statuses    []S
	transitions []Transition[S]
}

// NewMachine builds a table. Transitions keep their declaration order, which
// is the order actions are offered in.
func NewMachine[S ~string](name string, statuses []S, transitions ...Transition[S]) *Machine[S] {
	return &Machine[S]{name: name, statuses: statuses, transitions: transitions}
}

// Name returns the entity name used in error messages.
func (m *Machine[S]) Name() string {
	return m.name
}

// Statuses returns every status of the entity in display order.
func (m *Machine[S]) Statuses() []S {
	out := make([]S, len(m.statuses))
	copy(out, m.statuses)
	return out
}

// Actions returns the actions available from status. Terminal statuses
// return nil.
func (m *Machine[S]) Actions(status S) []Action {
	var actions []Action
	for _, t := range m.transitions {
		if contains(t.From, status) {
			actions = append(actions, t.Action)
		}
	}
	return actions
}

// Can reports whether action is allowed from status.
func (m *Machine[S]) Can(status S, action Action) bool {
	t, ok := m.lookup(action)
	return ok && contains(t.From, status)
}

// Next returns the status an action leads to, or ErrActionNotAllowed.
func (m *Machine[S]) Next(status S, action Action) (S, error) {
	t, ok := m.lookup(action)
	if !ok {
		return status, fmt.Errorf("%w: %s has no action %q", ErrActionNotAllowed, m.name, action)
	}
	if !contains(t.From, status) {
		return status, fmt.Errorf("%w: cannot %s %s in status %s", ErrActionNotAllowed, action, m.name, status)
	}
	if t.To == "" {
		return status, nil
	}
	return t.To, nil
}

// Terminal reports whether no action is available from status.
func (m *Machine[S]) Terminal(status S) bool {
	return len(m.Actions(status)) == 0
}

func (m *Machine[S]) lookup(action Action) (Transition[S], bool) {
	for _, t := range m.transitions {
		if t.Action == action {
			return t, true
		}
	}
	return Transition[S]{}, false
}

func contains[S comparable](list []S, v S) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
