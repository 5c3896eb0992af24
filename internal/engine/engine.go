// Package engine reconciles initiative table snapshots against the roster.
//
// Every cycle compares exactly two points in time: the roster as last
// applied and the newest snapshot. There is no event log, so a missed or
// coalesced file notification only produces a larger diff on the next
// cycle.
package engine

import (
	"fmt"
	"strings"

	"github.com/adamavenir/initbot/internal/roster"
	"github.com/adamavenir/initbot/internal/types"
)

// Source produces the current snapshot of the table.
type Source interface {
	Read() ([]types.CombatantRecord, error)
}

// Engine owns the roster and turns snapshots into narrative events.
type Engine struct {
	source Source
	store  *roster.Store
}

// New creates an engine over store. The store must not be written by
// anything else.
func New(source Source, store *roster.Store) *Engine {
	return &Engine{source: source, store: store}
}

// Roster exposes the current roster for rendering.
func (e *Engine) Roster() roster.View {
	return e.store
}

// Bootstrap populates the roster from a fresh snapshot without narration.
// On error the roster is left untouched.
func (e *Engine) Bootstrap() error {
	records, err := e.source.Read()
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.Name)
		e.store.Insert(rec.Name, rec.State())
	}
	e.prune(names)
	e.store.SetOrder(names)
	return nil
}

// Update reads a new snapshot and applies it, returning what changed in
// snapshot order. A read failure yields a single EventReadFailed and leaves
// the roster as it was.
func (e *Engine) Update() []types.Event {
	records, err := e.source.Read()
	if err != nil {
		return []types.Event{{Kind: types.EventReadFailed, Err: err}}
	}

	var events []types.Event
	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.Name)
		next := rec.State()
		prev, known := e.store.Get(rec.Name)
		if known {
			events = append(events, diff(rec.Name, prev, next)...)
		} else if !next.Invisible() {
			events = append(events,
				types.Event{Kind: types.EventJoined, Name: rec.Name, New: next},
				types.Event{Kind: types.EventLine, Name: rec.Name, New: next},
			)
		}
		e.store.Insert(rec.Name, next)
	}

	e.prune(names)
	e.store.SetOrder(names)
	return events
}

// prune silently drops combatants missing from the snapshot.
func (e *Engine) prune(names []string) {
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}
	e.store.Retain(func(name string) bool { return present[name] })
}

// diff compares two states of the same combatant.
func diff(name string, prev, next types.CombatantState) []types.Event {
	wasHidden, isHidden := prev.Invisible(), next.Invisible()
	switch {
	case wasHidden && isHidden:
		return nil
	case !wasHidden && isHidden:
		return []types.Event{{Kind: types.EventDisappeared, Name: name, Old: prev, New: next}}
	case wasHidden && !isHidden:
		return []types.Event{
			{Kind: types.EventAppeared, Name: name, Old: prev, New: next},
			{Kind: types.EventLine, Name: name, New: next},
		}
	}

	var events []types.Event
	if prev.HPCur != next.HPCur {
		events = append(events, types.Event{
			Kind:  types.EventDamaged,
			Name:  name,
			Old:   prev,
			New:   next,
			Delta: int64(prev.HPCur) - int64(next.HPCur),
		})
	}
	if prev.Init != next.Init {
		events = append(events, types.Event{Kind: types.EventInitiative, Name: name, Old: prev, New: next})
	}
	if prev.Extra != next.Extra {
		// Gaining tags quotes the new string, losing them quotes the old one.
		kind := types.EventUntagged
		if strings.TrimSpace(next.Extra) != "" {
			kind = types.EventTagged
		}
		events = append(events, types.Event{Kind: kind, Name: name, Old: prev, New: next})
	}
	// Turn ending is not announced.
	if !prev.Turn && next.Turn {
		events = append(events,
			types.Event{Kind: types.EventTurn, Name: name, Old: prev, New: next},
			types.Event{Kind: types.EventLine, Name: name, New: next},
		)
	}
	return events
}
