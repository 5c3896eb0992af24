package command

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adamavenir/initbot/internal/bot"
	"github.com/adamavenir/initbot/internal/core"
	"github.com/adamavenir/initbot/internal/db"
	"github.com/adamavenir/initbot/internal/engine"
	"github.com/adamavenir/initbot/internal/format"
	"github.com/adamavenir/initbot/internal/irc"
	"github.com/adamavenir/initbot/internal/roster"
	"github.com/adamavenir/initbot/internal/sheet"
	"github.com/adamavenir/initbot/internal/watch"
)

// runBot connects, watches the table and runs the bot until a source ends
// or the process is signalled.
func runBot(cmd *cobra.Command, tablePath, channel string) error {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		return writeCommandError(cmd, err)
	}
	logger := newLogger(cmd.ErrOrStderr(), debug || cfg.Debug)
	logger.Info("starting", "table", tablePath, "channel", channel, "config", configPath)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var journal bot.Journal
	if cfg.Journal != "" {
		conn, err := db.OpenDatabase(cfg.Journal)
		if err != nil {
			return writeCommandError(cmd, err)
		}
		defer conn.Close()
		journal = db.Journal{Conn: conn}
		logger.Info("journal open", "path", cfg.Journal)
	}

	watcher, err := watch.New(tablePath, logger)
	if err != nil {
		return writeCommandError(cmd, err)
	}
	defer watcher.Close()
	logger.Info("watching table", "path", watcher.Path())

	logger.Info("connecting", "server", cfg.Address(), "nick", cfg.Nickname, "tls", cfg.UseTLS)
	client, err := irc.Dial(ctx, cfg, cfg.WithChannel(channel), logger)
	if err != nil {
		return writeCommandError(cmd, err)
	}
	defer client.Close()

	eng := engine.New(sheet.NewSource(tablePath), roster.New())
	b := bot.New(client, watcher.Changes(), eng, bot.Config{
		Channel: channel,
		Style:   format.IRC,
		Journal: journal,
		Logger:  logger,
	})

	logger.Info("running")
	if err := b.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("shutting down")
			return nil
		}
		return writeCommandError(cmd, err)
	}
	return nil
}
