package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/adamavenir/initbot/internal/core"
	"github.com/adamavenir/initbot/internal/db"
	"github.com/adamavenir/initbot/internal/types"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show messages the bot has sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := journalPath(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			conn, err := db.OpenDatabase(path)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer conn.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			channel, _ := cmd.Flags().GetString("channel")
			entries, err := db.GetEntries(conn, &types.JournalQueryOptions{Limit: limit, Channel: channel})
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if jsonMode, _ := cmd.Flags().GetBool("json"); jsonMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No messages recorded")
				return nil
			}
			total, err := db.CountEntries(conn)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			prefixLen := core.GetDisplayPrefixLength(total)
			for _, entry := range entries {
				when := humanize.Time(time.UnixMilli(entry.TS))
				fmt.Fprintf(out, "#%s [%s] %s %s: %s\n", core.GetGUIDPrefix(entry.ID, prefixLen), when, entry.Channel, entry.Kind, entry.Body)
			}
			return nil
		},
	}

	cmd.Flags().String("journal", "", "journal database (defaults to the config's journal)")
	cmd.Flags().String("channel", "", "only show messages sent to this channel")
	cmd.Flags().Int("limit", 20, "maximum number of messages to show (0 for all)")
	cmd.Flags().Bool("json", false, "output in JSON format")

	return cmd
}

func journalPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("journal"); path != "" {
		return path, nil
	}
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		return "", err
	}
	if cfg.Journal == "" {
		return "", errors.New("no journal configured; set journal in the config or pass --journal")
	}
	return cfg.Journal, nil
}
