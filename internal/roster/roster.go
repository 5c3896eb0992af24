package roster

import "github.com/adamavenir/initbot/internal/types"

// View is the read-only side of a roster, used by formatters.
type View interface {
	Names() []string
	Get(name string) (types.CombatantState, bool)
}

// Store holds combatant states keyed by name plus their display order.
// It is not safe for concurrent use; the engine is its only writer.
type Store struct {
	order      []string
	combatants map[string]types.CombatantState
}

// New creates an empty store.
func New() *Store {
	return &Store{
		combatants: make(map[string]types.CombatantState),
	}
}

// Get returns the state for name.
func (s *Store) Get(name string) (types.CombatantState, bool) {
	state, ok := s.combatants[name]
	return state, ok
}

// Insert adds or replaces a combatant. New names go to the end of the order.
func (s *Store) Insert(name string, state types.CombatantState) {
	if _, ok := s.combatants[name]; !ok {
		s.order = append(s.order, name)
	}
	s.combatants[name] = state
}

// Remove drops a combatant from both the map and the order.
func (s *Store) Remove(name string) {
	if _, ok := s.combatants[name]; !ok {
		return
	}
	delete(s.combatants, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Names returns a copy of the display order.
func (s *Store) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Retain drops every combatant whose name fails keep.
func (s *Store) Retain(keep func(name string) bool) {
	kept := s.order[:0]
	for _, name := range s.order {
		if keep(name) {
			kept = append(kept, name)
			continue
		}
		delete(s.combatants, name)
	}
	s.order = kept
}

// SetOrder replaces the display order. Names without an entry are skipped
// so the order and the map never drift apart.
func (s *Store) SetOrder(names []string) {
	order := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := s.combatants[name]; !ok || seen[name] {
			continue
		}
		seen[name] = true
		order = append(order, name)
	}
	s.order = order
}

// Len returns the number of combatants.
func (s *Store) Len() int {
	return len(s.combatants)
}
