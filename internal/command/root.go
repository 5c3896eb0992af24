package command

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/adamavenir/initbot/internal/core"
)

const AppName = "initbot"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   AppName + " <table> <channel>",
		Short: "initbot - IRC narrator for a tabletop initiative table",
		Long: `initbot watches a CSV initiative table and narrates changes to an IRC channel.

Connection settings are read from config.toml (or --config). Once the bot
sees itself join <channel> it posts the table, then reports every change
saved to the file. In the channel, "!table" reposts the table and
"!send <text>" relays text as the bot.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd, args[0], args[1])
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().String("config", core.DefaultConfigPath, "connection config file")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	cmd.AddCommand(
		NewShowCmd(),
		NewDiffCmd(),
		NewHistoryCmd(),
	)

	return cmd
}

func Execute() error {
	return NewRootCmd(Version).Execute()
}
