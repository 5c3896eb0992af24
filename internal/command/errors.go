package command

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func writeCommandError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())

	if errors.Is(err, os.ErrNotExist) && strings.Contains(err.Error(), "read config") {
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: create config.toml with at least server and nickname, or pass --config")
	}
	if isSchemaError(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: the journal schema does not match. Move the journal file aside and restart")
	}

	return err
}

// isSchemaError checks if an error is a SQLite schema mismatch.
func isSchemaError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "no such column") ||
		strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "has no column")
}
