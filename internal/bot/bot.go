// Package bot drives the reconciliation engine from chat and file-change
// events.
//
// A single goroutine owns the roster, the engine and the identified/ready
// flags. Each turn identifies once, flushes, drains whatever chat events
// and file changes are already queued, flushes again and then blocks until
// either source has more.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adamavenir/initbot/internal/db"
	"github.com/adamavenir/initbot/internal/engine"
	"github.com/adamavenir/initbot/internal/format"
	"github.com/adamavenir/initbot/internal/irc"
	"github.com/adamavenir/initbot/internal/types"
	"github.com/adamavenir/initbot/internal/watch"
)

var (
	// ErrChatClosed means the chat connection ended.
	ErrChatClosed = errors.New("chat stream ended")
	// ErrWatchClosed means the file watcher stopped.
	ErrWatchClosed = errors.New("file watch stream ended")
)

// Chat is the outbound and inbound side of the chat connection.
type Chat interface {
	Identify() error
	Send(target, text string) error
	Flush() error
	CurrentNick() string
	Events() <-chan irc.Event
}

// Journal records messages the bot sent.
type Journal interface {
	Append(entry types.JournalEntry) error
}

// Config holds bot options.
type Config struct {
	Channel string
	Style   format.Style
	Journal Journal
	Logger  *slog.Logger
}

// Bot is the driver loop.
type Bot struct {
	chat    Chat
	changes <-chan watch.Change
	engine  *engine.Engine
	channel string
	style   format.Style
	journal Journal
	logger  *slog.Logger

	identified   bool
	ready        bool
	bootstrapped bool
}

// New creates a bot. The engine must not be used by anything else while the
// bot runs.
func New(chat Chat, changes <-chan watch.Change, eng *engine.Engine, cfg Config) *Bot {
	if cfg.Style == nil {
		cfg.Style = format.IRC
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Bot{
		chat:    chat,
		changes: changes,
		engine:  eng,
		channel: cfg.Channel,
		style:   cfg.Style,
		journal: cfg.Journal,
		logger:  cfg.Logger,
	}
}

// Ready reports whether the bot has seen itself join the channel.
func (b *Bot) Ready() bool {
	return b.ready
}

// Run loops until a source ends or ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	for {
		if err := b.Turn(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-b.chat.Events():
			if !ok {
				return b.chatClosed()
			}
			if err := b.handleChat(ev); err != nil {
				return err
			}
		case _, ok := <-b.changes:
			if !ok {
				return ErrWatchClosed
			}
			b.handleChange()
		}
	}
}

// Turn does all currently available work without blocking.
func (b *Bot) Turn() error {
	if !b.identified {
		if err := b.chat.Identify(); err != nil {
			return fmt.Errorf("identify: %w", err)
		}
		b.identified = true
	}
	if err := b.flush(); err != nil {
		return err
	}
	if err := b.drainChat(); err != nil {
		return err
	}
	if err := b.drainChanges(); err != nil {
		return err
	}
	return b.flush()
}

func (b *Bot) flush() error {
	if err := b.chat.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func (b *Bot) drainChat() error {
	for {
		select {
		case ev, ok := <-b.chat.Events():
			if !ok {
				return b.chatClosed()
			}
			if err := b.handleChat(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (b *Bot) drainChanges() error {
	for {
		select {
		case _, ok := <-b.changes:
			if !ok {
				return ErrWatchClosed
			}
			b.handleChange()
		default:
			return nil
		}
	}
}

func (b *Bot) chatClosed() error {
	if c, ok := b.chat.(interface{ Err() error }); ok && c.Err() != nil {
		return fmt.Errorf("%w: %v", ErrChatClosed, c.Err())
	}
	return ErrChatClosed
}

func (b *Bot) handleChange() {
	if !b.ready {
		b.logger.Debug("table changed before join, ignoring")
		return
	}
	if !b.bootstrapped {
		b.bootstrap()
		return
	}
	b.logger.Debug("reconciling table")
	for _, ev := range b.engine.Update() {
		kind := db.KindNarrative
		if ev.Kind == types.EventReadFailed {
			kind = db.KindError
			b.logger.Warn("table read failed", "err", ev.Err)
		}
		text, ok := format.Narrate(b.style, ev)
		if !ok {
			continue
		}
		plain, _ := format.Narrate(format.Plain, ev)
		b.say(kind, text, plain)
	}
}

// bootstrap fills the roster and broadcasts it. A failed read is reported
// and retried on the next stimulus.
func (b *Bot) bootstrap() {
	if err := b.engine.Bootstrap(); err != nil {
		b.logger.Error("bootstrap failed", "err", err)
		b.say(db.KindError, format.ReadFailure(b.style, err), format.ReadFailure(format.Plain, err))
		return
	}
	b.bootstrapped = true
	b.logger.Info("roster loaded", "combatants", len(b.engine.Roster().Names()))
	b.sendTable()
}

// sendTable queues the table and journals the lines that were queued.
func (b *Bot) sendTable() {
	lines := format.Table(b.style, b.engine.Roster())
	plain := format.Table(format.Plain, b.engine.Roster())
	sent := make([]string, 0, len(plain))
	for i, line := range lines {
		if err := b.chat.Send(b.channel, line); err != nil {
			b.logger.Warn("send failed", "err", err)
			continue
		}
		sent = append(sent, plain[i])
	}
	if len(sent) > 0 {
		b.record(db.KindTable, strings.Join(sent, "\n"))
	}
}

// say queues one message and journals it. Blank text sends nothing.
func (b *Bot) say(kind, text, plain string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if err := b.chat.Send(b.channel, text); err != nil {
		b.logger.Warn("send failed", "kind", kind, "err", err)
		return
	}
	b.record(kind, plain)
}

func (b *Bot) record(kind, body string) {
	if b.journal == nil {
		return
	}
	err := b.journal.Append(types.JournalEntry{Channel: b.channel, Kind: kind, Body: body})
	if err != nil {
		b.logger.Warn("journal append failed", "err", err)
	}
}
