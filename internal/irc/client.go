// Package irc is a small IRC client: registration, channel joins, PING
// handling and a stream of inbound chat events.
package irc

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/ergochat/irc-go/ircmsg"

	"github.com/adamavenir/initbot/internal/core"
)

// EventKind distinguishes inbound events.
type EventKind int

const (
	// EventMessage is a PRIVMSG to a channel or to the bot.
	EventMessage EventKind = iota + 1
	// EventJoin is a member joining a channel, the bot included.
	EventJoin
)

// Event is one inbound chat event.
type Event struct {
	Kind   EventKind
	Nick   string
	Target string // channel for joins, target for messages
	Text   string
}

// Client is a registered IRC connection. Writes are buffered until Flush;
// the reader goroutine answers PINGs on its own.
type Client struct {
	cfg      core.Config
	channels []string
	conn     net.Conn
	logger   *slog.Logger

	mu     sync.Mutex
	w      *bufio.Writer
	nick   string
	altIdx int

	events chan Event
	done   chan struct{}

	errMu sync.Mutex
	err   error
}

// Dial connects to the configured server. channels are joined once the
// server welcomes the bot.
func Dial(ctx context.Context, cfg core.Config, channels []string, logger *slog.Logger) (*Client, error) {
	dialer := &net.Dialer{Timeout: 30 * time.Second, KeepAlive: time.Minute}
	var (
		conn net.Conn
		err  error
	)
	if cfg.UseTLS {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: cfg.Server}}
		conn, err = tlsDialer.DialContext(ctx, "tcp", cfg.Address())
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", cfg.Address())
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.Address(), err)
	}
	return New(conn, cfg, channels, logger), nil
}

// New wraps an established connection and starts reading from it.
func New(conn net.Conn, cfg core.Config, channels []string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		cfg:      cfg,
		channels: channels,
		conn:     conn,
		logger:   logger,
		w:        bufio.NewWriter(conn),
		nick:     cfg.Nickname,
		events:   make(chan Event, 256),
		done:     make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Identify queues the registration handshake.
func (c *Client) Identify() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfg.Password != "" {
		if err := c.write("PASS", c.cfg.Password); err != nil {
			return err
		}
	}
	if err := c.write("NICK", c.nick); err != nil {
		return err
	}
	return c.write("USER", c.cfg.Username, "0", "*", c.cfg.Realname)
}

// Send queues a PRIVMSG per non-empty line of text.
func (c *Client) Send(target, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if err := c.write("PRIVMSG", target, line); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes queued lines to the connection.
func (c *Client) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Flush()
}

// CurrentNick returns the nick the server knows the bot by.
func (c *Client) CurrentNick() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nick
}

// Events returns inbound events. The channel is closed when the connection
// ends; Err then reports why.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Err returns the error that ended the read loop, if any.
func (c *Client) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

// Close shuts the connection down.
func (c *Client) Close() error {
	select {
	case <-c.done:
		return nil
	default:
	}
	close(c.done)
	return c.conn.Close()
}

// write must be called with mu held.
func (c *Client) write(command string, params ...string) error {
	msg := ircmsg.MakeMessage(nil, "", command, params...)
	line, err := msg.Line()
	if err != nil {
		return fmt.Errorf("encode %s: %w", command, err)
	}
	_, err = c.w.WriteString(line)
	return err
}

func (c *Client) writeNow(command string, params ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.write(command, params...); err != nil {
		return err
	}
	return c.w.Flush()
}

func (c *Client) readLoop() {
	defer close(c.events)

	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 0, 4096), 16*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		msg, err := ircmsg.ParseLine(line)
		if err != nil {
			c.logger.Debug("irc: unparseable line", "line", line, "err", err)
			continue
		}
		if !c.handle(msg) {
			return
		}
	}

	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	select {
	case <-c.done:
		err = net.ErrClosed
	default:
	}
	c.setErr(err)
}

// handle processes one server message. It returns false once the client
// is closed.
func (c *Client) handle(msg ircmsg.Message) bool {
	switch msg.Command {
	case "PING":
		if err := c.writeNow("PONG", msg.Params...); err != nil {
			c.logger.Warn("irc: pong failed", "err", err)
		}
	case "001":
		if len(msg.Params) > 0 {
			c.setNick(msg.Params[0])
		}
		c.logger.Info("irc: registered", "nick", c.CurrentNick())
		for _, ch := range c.channels {
			if err := c.writeNow("JOIN", ch); err != nil {
				c.logger.Warn("irc: join failed", "channel", ch, "err", err)
			}
		}
	case "433":
		next := c.nextNick()
		c.logger.Info("irc: nick in use", "retry", next)
		if err := c.writeNow("NICK", next); err != nil {
			c.logger.Warn("irc: nick retry failed", "err", err)
		}
	case "NICK":
		if len(msg.Params) > 0 && sourceNick(msg.Source) == c.CurrentNick() {
			c.setNick(msg.Params[0])
		}
	case "ERROR":
		c.logger.Warn("irc: server error", "params", msg.Params)
	case "JOIN":
		if len(msg.Params) > 0 {
			return c.emit(Event{Kind: EventJoin, Nick: sourceNick(msg.Source), Target: msg.Params[0]})
		}
	case "PRIVMSG":
		if len(msg.Params) > 1 {
			return c.emit(Event{Kind: EventMessage, Nick: sourceNick(msg.Source), Target: msg.Params[0], Text: msg.Params[1]})
		}
	}
	return true
}

func (c *Client) emit(ev Event) bool {
	select {
	case c.events <- ev:
		return true
	case <-c.done:
		return false
	}
}

func (c *Client) setNick(nick string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nick = nick
}

func (c *Client) nextNick() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.altIdx < len(c.cfg.AltNicks) {
		c.nick = c.cfg.AltNicks[c.altIdx]
		c.altIdx++
	} else {
		c.nick += "_"
	}
	return c.nick
}

func (c *Client) setErr(err error) {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	if c.err == nil {
		c.err = err
	}
}

// sourceNick extracts the nick from a nick!user@host source.
func sourceNick(source string) string {
	nick, _, _ := strings.Cut(source, "!")
	nick, _, _ = strings.Cut(nick, "@")
	return nick
}
