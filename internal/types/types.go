package types

import "strings"

// InvisibleTag marks a combatant that must not be announced or displayed.
const InvisibleTag = "invisible"

// CombatantRecord is one raw row of the initiative table.
type CombatantRecord struct {
	Init   uint32 `csv:"init"`
	Turn   string `csv:"turn"`
	Name   string `csv:"name"`
	Player string `csv:"player"`
	HPCur  uint32 `csv:"hp_cur"`
	HPMax  uint32 `csv:"hp_max"`
	AC     uint32 `csv:"ac"`
	Extra  string `csv:"extra"`
}

// State decodes the marker columns of a record.
func (r CombatantRecord) State() CombatantState {
	return CombatantState{
		Player: strings.TrimSpace(r.Player) != "",
		Turn:   strings.TrimSpace(r.Turn) != "",
		Init:   r.Init,
		HPCur:  r.HPCur,
		HPMax:  r.HPMax,
		AC:     r.AC,
		Extra:  r.Extra,
	}
}

// CombatantState is the normalized roster entry for a combatant.
type CombatantState struct {
	Player bool   `json:"player"`
	Turn   bool   `json:"turn"`
	Init   uint32 `json:"init"`
	HPCur  uint32 `json:"hp_cur"`
	HPMax  uint32 `json:"hp_max"`
	AC     uint32 `json:"ac"`
	Extra  string `json:"extra"`
}

// Invisible reports whether the tag string carries the invisible marker.
func (c CombatantState) Invisible() bool {
	return strings.Contains(c.Extra, InvisibleTag)
}

// HPPercent returns current HP as a percentage of max, clamped to [0,100].
// Any living combatant is at least 1 so only zero HP reads as 0. A zero max
// counts as full health unless current HP is also zero.
func (c CombatantState) HPPercent() int {
	if c.HPMax == 0 {
		if c.HPCur == 0 {
			return 0
		}
		return 100
	}
	perc := int(float64(c.HPCur) / float64(c.HPMax) * 100)
	switch {
	case perc > 100:
		return 100
	case perc < 1 && c.HPCur > 0:
		return 1
	}
	return perc
}

// EventKind identifies a narrative event.
type EventKind string

const (
	EventJoined      EventKind = "joined"
	EventDisappeared EventKind = "disappeared"
	EventAppeared    EventKind = "appeared"
	EventDamaged     EventKind = "damaged"
	EventInitiative  EventKind = "initiative"
	EventTagged      EventKind = "tagged"
	EventUntagged    EventKind = "untagged"
	EventTurn        EventKind = "turn"
	EventLine        EventKind = "line"
	EventReadFailed  EventKind = "read_failed"
)

// Event is one detected change between two snapshots.
type Event struct {
	Kind  EventKind
	Name  string
	Old   CombatantState
	New   CombatantState
	Delta int64
	Err   error
}

// JournalEntry is one message the bot sent to the channel.
type JournalEntry struct {
	ID      string `json:"id"`
	TS      int64  `json:"ts"`
	Channel string `json:"channel"`
	Kind    string `json:"kind"`
	Body    string `json:"body"`
}

// JournalQueryOptions controls journal queries.
type JournalQueryOptions struct {
	Limit   int
	Channel string
	Since   int64
}
