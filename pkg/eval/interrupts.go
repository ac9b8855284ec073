package eval

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
)

// ErrInterrupted is returned when the evaluation is interrupted.
var ErrInterrupted = errors.New("interrupted")

// ListenInterrupts starts to listen to terminal interrupts. It returns a
// channel that is closed when a SIGINT or SIGQUIT has been received, and a
// function to stop listening. It is suitable as EvalCfg.Interrupt.
func ListenInterrupts() (<-chan struct{}, func()) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGQUIT)
	return ctx.Done(), stop
}
