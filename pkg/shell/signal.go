package shell

import (
	"io"
	"os/signal"

	"github.com/source-academy/scm-slang/pkg/sys"
)

// Starts relaying signals to handleSignal. Interrupts are only logged here;
// during an evaluation they are handled by eval.ListenInterrupts.
func initSignal(stderr io.Writer) func() {
	sigCh := sys.NotifySignals()
	go func() {
		for sig := range sigCh {
			logger.Println("signal", sys.SignalName(sig))
			handleSignal(sig, stderr)
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(sigCh)
	}
}
