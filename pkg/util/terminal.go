package util

import (
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

// InTerminal determines whether stdout is a terminal. Used to decide whether
// spinners and color output make sense.
func InTerminal() bool {
	return terminal.IsTerminal(int(os.Stdout.Fd()))
}
