package bot

import (
	"strings"

	"github.com/adamavenir/initbot/internal/db"
	"github.com/adamavenir/initbot/internal/irc"
)

const (
	tableCommand = "!table"
	sendCommand  = "!send "
)

func (b *Bot) handleChat(ev irc.Event) error {
	switch ev.Kind {
	case irc.EventJoin:
		b.handleJoin(ev)
	case irc.EventMessage:
		b.dispatch(ev.Text)
	}
	return nil
}

func (b *Bot) handleJoin(ev irc.Event) {
	b.logger.Debug("join", "nick", ev.Nick, "channel", ev.Target)
	if ev.Nick != b.chat.CurrentNick() || !strings.EqualFold(ev.Target, b.channel) {
		return
	}
	b.logger.Info("joined channel", "channel", ev.Target)
	b.ready = true
	if !b.bootstrapped {
		b.bootstrap()
		return
	}
	b.sendTable()
}

// dispatch handles channel text. Anything that is not a command is ignored.
func (b *Bot) dispatch(text string) {
	switch {
	case text == tableCommand:
		if b.ready && !b.bootstrapped {
			b.bootstrap()
			return
		}
		b.sendTable()
	case strings.Contains(text, sendCommand):
		relay := strings.Replace(text, sendCommand, "", 1)
		b.say(db.KindRelay, relay, relay)
	}
}
