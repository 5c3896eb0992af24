package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adamavenir/initbot/internal/engine"
	"github.com/adamavenir/initbot/internal/format"
	"github.com/adamavenir/initbot/internal/roster"
	"github.com/adamavenir/initbot/internal/sheet"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Print what the bot would say if <old> were saved as <new>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, _ := cmd.Flags().GetBool("plain")
			style := outputStyle(plain)

			source := sheet.NewSource(args[0])
			eng := engine.New(source, roster.New())
			if err := eng.Bootstrap(); err != nil {
				return writeCommandError(cmd, err)
			}

			source.Path = args[1]
			out := cmd.OutOrStdout()
			printed := 0
			for _, ev := range eng.Update() {
				text, ok := format.Narrate(style, ev)
				if !ok {
					continue
				}
				fmt.Fprintln(out, text)
				printed++
			}
			if printed == 0 {
				fmt.Fprintln(out, "No changes")
			}
			return nil
		},
	}

	cmd.Flags().Bool("plain", false, "disable colors")

	return cmd
}
