package format

import (
	"fmt"

	"github.com/adamavenir/initbot/internal/types"
)

// ReadFailure renders the diagnostic sent when the table cannot be read.
func ReadFailure(style Style, err error) string {
	return style.Paint(fmt.Sprintf("[!!] Couldn't read the initiative table: %v", err), true, ToneAlert)
}

// Narrate renders one event. It reports false when the event has nothing
// to show, such as the line of an invisible combatant.
func Narrate(style Style, ev types.Event) (string, bool) {
	name := style.Paint(ev.Name, true, ToneNone)
	switch ev.Kind {
	case types.EventJoined:
		return fmt.Sprintf("Combatant %s joined the encounter!", name), true
	case types.EventDisappeared:
		return fmt.Sprintf("A wild %s disappeared.", name), true
	case types.EventAppeared:
		return fmt.Sprintf("A wild %s appeared!", name), true
	case types.EventDamaged:
		return fmt.Sprintf("%s took %s points of damage! (%s -> %s)",
			name,
			style.Paint(fmt.Sprint(ev.Delta), true, ToneNone),
			HP(style, ev.Old),
			HP(style, ev.New),
		), true
	case types.EventInitiative:
		return fmt.Sprintf("%s's initiative changed from %s to %s.",
			name,
			style.Paint(fmt.Sprint(ev.Old.Init), true, ToneNone),
			style.Paint(fmt.Sprint(ev.New.Init), true, ToneNone),
		), true
	case types.EventTagged:
		return fmt.Sprintf("%s has tags: %s", name, ev.New.Extra), true
	case types.EventUntagged:
		return fmt.Sprintf("%s is no longer: %s", name, ev.Old.Extra), true
	case types.EventTurn:
		return fmt.Sprintf("It's now %s's turn.", name), true
	case types.EventLine:
		return Line(style, ev.Name, ev.New)
	case types.EventReadFailed:
		return ReadFailure(style, ev.Err), true
	}
	return "", false
}
