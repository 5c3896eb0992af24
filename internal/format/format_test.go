package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamavenir/initbot/internal/roster"
	"github.com/adamavenir/initbot/internal/types"
)

func orc() types.CombatantState {
	return types.CombatantState{Init: 12, HPCur: 10, HPMax: 10}
}

func bob() types.CombatantState {
	return types.CombatantState{Init: 15, Turn: true, Player: true, HPCur: 20, HPMax: 20, AC: 16}
}

func TestBand(t *testing.T) {
	cases := []struct {
		cur, max uint32
		want     string
	}{
		{10, 10, "Healthy"},
		{12, 10, "Healthy"},
		{99, 100, "Good"},
		{75, 100, "Good"},
		{74, 100, "Injured"},
		{51, 100, "Injured"},
		{50, 100, "Injured"},
		{49, 100, "Bloodied"},
		{25, 100, "Bloodied"},
		{24, 100, "Mutilated"},
		{1, 10, "Mutilated"},
		{1, 1000, "Mutilated"},
		{1, 101, "Mutilated"},
		{2, 250, "Mutilated"},
		{0, 10, "Dead"},
		{0, 0, "Dead"},
		{3, 0, "Healthy"},
	}
	for _, tc := range cases {
		label, _ := Band(types.CombatantState{HPCur: tc.cur, HPMax: tc.max})
		assert.Equal(t, tc.want, label, "hp %d/%d", tc.cur, tc.max)
	}
}

func TestLine_Plain(t *testing.T) {
	line, ok := Line(Plain, "Orc", orc())
	require.True(t, ok)
	assert.Equal(t, "- 12 <Orc> Healthy", line)

	line, ok = Line(Plain, "Bob", bob())
	require.True(t, ok)
	assert.Equal(t, "* 15 <Bob> 20/20, AC 16", line)
}

func TestLine_TagSuffix(t *testing.T) {
	c := orc()
	c.Extra = "prone"
	c.Init = 3
	line, ok := Line(Plain, "Orc", c)
	require.True(t, ok)
	assert.Equal(t, "- 03 <Orc> Healthy, prone", line)

	c.Extra = "   "
	line, _ = Line(Plain, "Orc", c)
	assert.Equal(t, "- 03 <Orc> Healthy", line)
}

func TestLine_InvisibleIsSuppressed(t *testing.T) {
	c := orc()
	c.Extra = "prone, invisible"
	line, ok := Line(IRC, "Orc", c)
	assert.False(t, ok)
	assert.Empty(t, line)
}

func TestLine_IRCCodes(t *testing.T) {
	line, ok := Line(IRC, "Bob", bob())
	require.True(t, ok)
	assert.Equal(t, "\x02\x0304* 15\x0f <\x02Bob\x0f> \x030920/20\x0f, AC 16", line)
}

func TestTable_SkipsInvisible(t *testing.T) {
	store := roster.New()
	store.Insert("Orc", orc())
	hidden := orc()
	hidden.Extra = "invisible"
	store.Insert("Goblin", hidden)
	store.Insert("Bob", bob())

	lines := Table(Plain, store)
	assert.Equal(t, []string{
		"Initiative table:",
		"- 12 <Orc> Healthy",
		"* 15 <Bob> 20/20, AC 16",
	}, lines)
}

func TestTable_IRCGolden(t *testing.T) {
	store := roster.New()
	store.Insert("Orc", orc())
	store.Insert("Bob", bob())

	out := strings.Join(Table(IRC, store), "\n") + "\n"

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "table_irc", []byte(out))
}

func TestPlainStyleIgnoresDecoration(t *testing.T) {
	assert.Equal(t, "x", Plain.Paint("x", true, ToneAlert))
	assert.Equal(t, "x", IRC.Paint("x", false, ToneNone))
	assert.Equal(t, "x", Terminal.Paint("x", false, ToneNone))
}

func TestNarrate_Plain(t *testing.T) {
	hurt := orc()
	hurt.HPCur = 6
	tagged := orc()
	tagged.Extra = "prone"
	fast := orc()
	fast.Init = 20

	cases := []struct {
		ev   types.Event
		want string
	}{
		{types.Event{Kind: types.EventJoined, Name: "Orc", New: orc()}, "Combatant Orc joined the encounter!"},
		{types.Event{Kind: types.EventDisappeared, Name: "Orc"}, "A wild Orc disappeared."},
		{types.Event{Kind: types.EventAppeared, Name: "Orc"}, "A wild Orc appeared!"},
		{types.Event{Kind: types.EventDamaged, Name: "Orc", Old: orc(), New: hurt, Delta: 4}, "Orc took 4 points of damage! (Healthy -> Injured)"},
		{types.Event{Kind: types.EventDamaged, Name: "Orc", Old: hurt, New: orc(), Delta: -4}, "Orc took -4 points of damage! (Injured -> Healthy)"},
		{types.Event{Kind: types.EventInitiative, Name: "Orc", Old: orc(), New: fast}, "Orc's initiative changed from 12 to 20."},
		{types.Event{Kind: types.EventTagged, Name: "Orc", Old: orc(), New: tagged}, "Orc has tags: prone"},
		{types.Event{Kind: types.EventUntagged, Name: "Orc", Old: tagged, New: orc()}, "Orc is no longer: prone"},
		{types.Event{Kind: types.EventTurn, Name: "Bob", New: bob()}, "It's now Bob's turn."},
		{types.Event{Kind: types.EventLine, Name: "Bob", New: bob()}, "* 15 <Bob> 20/20, AC 16"},
		{types.Event{Kind: types.EventReadFailed, Err: errors.New("bad row")}, "[!!] Couldn't read the initiative table: bad row"},
	}
	for _, tc := range cases {
		got, ok := Narrate(Plain, tc.ev)
		require.True(t, ok, "kind %s", tc.ev.Kind)
		assert.Equal(t, tc.want, got)
	}
}

func TestNarrate_IRCDamage(t *testing.T) {
	hurt := orc()
	hurt.HPCur = 6
	got, ok := Narrate(IRC, types.Event{Kind: types.EventDamaged, Name: "Orc", Old: orc(), New: hurt, Delta: 4})
	require.True(t, ok)
	assert.Equal(t, "\x02Orc\x0f took \x024\x0f points of damage! (\x0309Healthy\x0f -> \x0310Injured\x0f)", got)
}

func TestNarrate_InvisibleLine(t *testing.T) {
	c := orc()
	c.Extra = "invisible"
	_, ok := Narrate(Plain, types.Event{Kind: types.EventLine, Name: "Orc", New: c})
	assert.False(t, ok)
}

func TestHPPercent_LivingNeverZero(t *testing.T) {
	assert.Equal(t, 1, types.CombatantState{HPCur: 1, HPMax: 1000}.HPPercent())
	assert.Equal(t, 0, types.CombatantState{HPCur: 0, HPMax: 1000}.HPPercent())
	assert.Equal(t, 9, types.CombatantState{HPCur: 9, HPMax: 100}.HPPercent())
}
