// Package sys provides system utilities with the same API across OSes.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

const sigsChanBufferSize = 32

// NotifySignals returns a channel on which the signals the shell handles are
// delivered: interrupts, hangups and the stack dump request on Unix.
func NotifySignals() chan os.Signal { return notifySignals() }

// SignalName returns the conventional name of a signal, such as "SIGINT".
func SignalName(sig os.Signal) string { return signalName(sig) }

// IsATTY determines whether the given file descriptor is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
