// Package format renders combatants, the roster and narrative events.
package format

import (
	"fmt"
	"strings"

	"github.com/adamavenir/initbot/internal/roster"
	"github.com/adamavenir/initbot/internal/types"
)

// TableHeader opens every full roster rendering.
const TableHeader = "Initiative table:"

type band struct {
	lo, hi int // inclusive
	label  string
	tone   Tone
}

// bands are matched first to last. Bloodied reaches up to 51 so it overlaps
// Injured at 50 and 51; Injured is listed first and wins there.
var bands = []band{
	{100, 100, "Healthy", ToneHealthy},
	{75, 99, "Good", ToneGood},
	{50, 74, "Injured", ToneInjured},
	{25, 51, "Bloodied", ToneBloodied},
	{1, 24, "Mutilated", ToneMutilated},
	{0, 0, "Dead", ToneDead},
}

// Band returns the qualitative health label for a combatant.
func Band(c types.CombatantState) (string, Tone) {
	perc := c.HPPercent()
	for _, b := range bands {
		if perc >= b.lo && perc <= b.hi {
			return b.label, b.tone
		}
	}
	return "Dead", ToneDead
}

// Initiative renders the turn glyph and zero-padded initiative.
func Initiative(style Style, c types.CombatantState) string {
	if c.Turn {
		return style.Paint(fmt.Sprintf("* %02d", c.Init), true, ToneTurn)
	}
	return style.Paint(fmt.Sprintf("- %02d", c.Init), false, ToneNone)
}

// HP shows exact values for players and a health band for everyone else.
func HP(style Style, c types.CombatantState) string {
	label, tone := Band(c)
	if c.Player {
		return style.Paint(fmt.Sprintf("%d/%d", c.HPCur, c.HPMax), false, tone)
	}
	return style.Paint(label, false, tone)
}

// AC is only shown for players.
func AC(c types.CombatantState) string {
	if !c.Player {
		return ""
	}
	return fmt.Sprintf(", AC %d", c.AC)
}

// Tags returns the tag suffix, empty when there are no tags.
func Tags(c types.CombatantState) string {
	if strings.TrimSpace(c.Extra) == "" {
		return ""
	}
	return ", " + c.Extra
}

// Name renders a combatant name; non-players get the foe tone.
func Name(style Style, name string, c types.CombatantState) string {
	tone := ToneNone
	if !c.Player {
		tone = ToneFoe
	}
	return style.Paint(name, true, tone)
}

// Line renders one combatant. Invisible combatants are never rendered.
func Line(style Style, name string, c types.CombatantState) (string, bool) {
	if c.Invisible() {
		return "", false
	}
	return fmt.Sprintf("%s <%s> %s%s%s",
		Initiative(style, c),
		Name(style, name, c),
		HP(style, c),
		Tags(c),
		AC(c),
	), true
}

// Table renders the header and one line per visible combatant in display
// order.
func Table(style Style, view roster.View) []string {
	lines := []string{style.Paint(TableHeader, true, ToneAlert)}
	for _, name := range view.Names() {
		c, ok := view.Get(name)
		if !ok {
			continue
		}
		if line, ok := Line(style, name, c); ok {
			lines = append(lines, line)
		}
	}
	return lines
}
