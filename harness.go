package setupfirebase

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

// Harness is a support structure that runs tasks in order, the harness can be
// customized with pre- and post- execution hook functions, where common
// functionality to all tasks can be defined.
type Harness struct {
	PreExecHook  Task
	PostExecHook Task

	out io.Writer
}

// NewHarness constructs a harness.
func NewHarness(opts ...HarnessOption) *Harness {
	h := Harness{
		PreExecHook:  func(_ context.Context) error { return nil },
		PostExecHook: func(_ context.Context) error { return nil },
		out:          os.Stdout,
	}

	for _, opt := range opts {
		opt(&h)
	}

	return &h
}

// Execute a list of tasks inside the harness.
// Tasks run sequentially and the first failing task stops the execution; its
// error is returned untouched so callers can inspect it. The post execution
// hook only runs when every task succeeded.
func (h *Harness) Execute(ctx context.Context, tasks ...Task) error {
	start := time.Now()

	if err := h.PreExecHook(ctx); err != nil {
		return fmt.Errorf("failed to initialize harness: %w", err)
	}

	for i := range tasks {
		if err := tasks[i](ctx); err != nil {
			h.summary(start, err)
			return err
		}
	}

	if err := h.PostExecHook(ctx); err != nil {
		err = fmt.Errorf("failed to run post exec hook: %w", err)
		h.summary(start, err)
		return err
	}

	h.summary(start, nil)
	return nil
}

func (h *Harness) summary(start time.Time, err error) {
	elapsed := time.Since(start).Round(time.Millisecond)
	color.New(color.FgHiBlack).Fprintf(h.out, "------------------------\n\n")

	if err != nil {
		color.New(color.FgRed).Fprintf(h.out, " ✘ failed after %s\n", elapsed)
		color.New(color.FgRed).Fprintf(h.out, "   • %s\n\n", err.Error())
		return
	}

	color.New(color.FgGreen).Fprintf(h.out, " ✔ all good after %s\n\n", elapsed)
}

// Task defines the basic function that the harness executes.
// Additional configuration and tweaks can be done by using closures which return
// Tasks.
type Task func(ctx context.Context) error

type HarnessOption func(h *Harness)

// WithPreExecFunc allows specifying a task that will be run every execution, before the
// specific execution tasks are run.
func WithPreExecFunc(hook Task) HarnessOption {
	return func(h *Harness) {
		h.PreExecHook = hook
	}
}

// WithPostExecFunc allows specifying a task that will be run after all tasks succeeded.
func WithPostExecFunc(hook Task) HarnessOption {
	return func(h *Harness) {
		h.PostExecHook = hook
	}
}

// WithHarnessOutput redirects the summary output.
func WithHarnessOutput(w io.Writer) HarnessOption {
	return func(h *Harness) {
		h.out = w
	}
}
