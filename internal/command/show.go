package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adamavenir/initbot/internal/engine"
	"github.com/adamavenir/initbot/internal/format"
	"github.com/adamavenir/initbot/internal/roster"
	"github.com/adamavenir/initbot/internal/sheet"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <table>",
		Short: "Print the initiative table as the bot would post it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, _ := cmd.Flags().GetBool("plain")

			eng := engine.New(sheet.NewSource(args[0]), roster.New())
			if err := eng.Bootstrap(); err != nil {
				return writeCommandError(cmd, err)
			}

			out := cmd.OutOrStdout()
			for _, line := range format.Table(outputStyle(plain), eng.Roster()) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().Bool("plain", false, "disable colors")

	return cmd
}

func outputStyle(plain bool) format.Style {
	if plain {
		return format.Plain
	}
	return format.Terminal
}
