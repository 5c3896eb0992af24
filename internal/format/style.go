package format

import "github.com/charmbracelet/lipgloss"

// Tone is a semantic color. Styles decide how each tone looks.
type Tone int

const (
	ToneNone Tone = iota
	ToneTurn
	ToneHealthy
	ToneGood
	ToneInjured
	ToneBloodied
	ToneMutilated
	ToneDead
	ToneFoe
	ToneAlert
)

// Style decorates a fragment of text.
type Style interface {
	Paint(text string, bold bool, tone Tone) string
}

const (
	ircBold  = "\x02"
	ircColor = "\x03"
	ircReset = "\x0f"
)

var ircColors = map[Tone]string{
	ToneTurn:      "04",
	ToneHealthy:   "09",
	ToneGood:      "03",
	ToneInjured:   "10",
	ToneBloodied:  "07",
	ToneMutilated: "05",
	ToneDead:      "04",
	ToneFoe:       "07",
	ToneAlert:     "04",
}

type ircStyle struct{}

// IRC renders mIRC control codes. Colors are always two digits so text
// starting with a digit is not swallowed into the color number.
var IRC Style = ircStyle{}

func (ircStyle) Paint(text string, bold bool, tone Tone) string {
	code, colored := ircColors[tone]
	if !bold && !colored {
		return text
	}
	prefix := ""
	if bold {
		prefix += ircBold
	}
	if colored {
		prefix += ircColor + code
	}
	return prefix + text + ircReset
}

var terminalColors = map[Tone]lipgloss.Color{
	ToneTurn:      lipgloss.Color("9"),
	ToneHealthy:   lipgloss.Color("10"),
	ToneGood:      lipgloss.Color("2"),
	ToneInjured:   lipgloss.Color("6"),
	ToneBloodied:  lipgloss.Color("208"),
	ToneMutilated: lipgloss.Color("94"),
	ToneDead:      lipgloss.Color("1"),
	ToneFoe:       lipgloss.Color("214"),
	ToneAlert:     lipgloss.Color("196"),
}

type terminalStyle struct{}

// Terminal renders ANSI colors through lipgloss.
var Terminal Style = terminalStyle{}

func (terminalStyle) Paint(text string, bold bool, tone Tone) string {
	color, colored := terminalColors[tone]
	if !bold && !colored {
		return text
	}
	s := lipgloss.NewStyle().Bold(bold)
	if colored {
		s = s.Foreground(color)
	}
	return s.Render(text)
}

type plainStyle struct{}

// Plain leaves text undecorated.
var Plain Style = plainStyle{}

func (plainStyle) Paint(text string, _ bool, _ Tone) string {
	return text
}
