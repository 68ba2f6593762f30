package setupfirebase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/fatih/color"
)

// TaskRunner holds the metadata for a specific command.
type TaskRunner struct {
	Executable string
	Arguments  []string

	ctx          context.Context
	cmd          *exec.Cmd
	out          io.Writer
	okmsg        string
	allowexiterr bool
}

// Cmd builds a command runner for a specific Executable.
func Cmd(ctx context.Context, executable string, opts ...RunnerOpt) (*TaskRunner, error) {
	cmd := exec.CommandContext(ctx, executable)

	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// don't wait forever on pipes held open by grandchildren once ctx is done
	cmd.WaitDelay = time.Second

	r := TaskRunner{
		Executable: executable,
		ctx:        ctx,
		cmd:        cmd,
		out:        os.Stdout,
	}

	for _, opt := range opts {
		err := opt(&r)
		if err != nil {
			return nil, err
		}
	}

	cmd.Args = append([]string{executable}, r.Arguments...)

	return &r, nil
}

// Exec a command returning its error and pretty printing the outcome.
// A command killed because its context ended always fails, even when exit
// errors are allowed.
func (r *TaskRunner) Exec() error {
	var err error

	start := time.Now()
	defer func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			color.New(color.FgRed).Fprintf(r.out, " ✘ %s\n\n", elapsed)
			return
		}
		color.New(color.FgGreen).Fprintf(r.out, " ✔ %s\n\n", elapsed)
	}()

	logstep(r.out, fmt.Sprint(r.Executable, " ", strings.Join(r.Arguments, " ")))

	err = r.cmd.Run()

	if err != nil && r.ctx.Err() != nil {
		err = fmt.Errorf("%s: interrupted: %w", r.Executable, r.ctx.Err())
		return err
	}

	var exiterr *exec.ExitError
	if err != nil && r.allowexiterr && errors.As(err, &exiterr) {
		color.New(color.FgYellow).Fprintf(r.out, "   %s exited with code %d\n", r.Executable, exiterr.ExitCode())
		err = nil
	}

	if err != nil {
		err = fmt.Errorf("%s: %w", r.Executable, err)
		return err
	}

	if r.okmsg != "" {
		color.New(color.FgGreen).Fprintln(r.out, r.okmsg)
	}

	return nil
}

// Run is a helper function to avoid repetition while gracefully handling errors.
func Run(ctx context.Context, program string, opts ...RunnerOpt) error {
	rnr, err := Cmd(ctx, program, opts...)
	if err != nil {
		return err
	}

	return rnr.Exec()
}

// fancy-ish log of a task step.
func logstep(w io.Writer, text string) {
	fmt.Fprintln(
		w,
		color.MagentaString(" ⌘"),
		color.New(color.Bold).Sprint(text),
	)
}

func logdetail(w io.Writer, text string) {
	fmt.Fprintln(
		w,
		color.New(color.FgHiBlack).Sprint("   └"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}

// RunnerOpt allows customizing the behavior of the command runner.
type RunnerOpt func(r *TaskRunner) error

// WithEnv sets up environment variables for the command on top of the current
// process environment. Later values win over inherited ones.
func WithEnv(vars ...string) RunnerOpt {
	return func(r *TaskRunner) error {
		r.cmd.Env = os.Environ()
		for _, vrb := range vars {
			if err := validenv(vrb); err != nil {
				return err
			}
			r.cmd.Env = append(r.cmd.Env, vrb)
		}
		return nil
	}
}

// WithEnviron replaces the whole environment of the command; nothing is
// inherited from the current process.
func WithEnviron(vars []string) RunnerOpt {
	return func(r *TaskRunner) error {
		env := make([]string, 0, len(vars))
		for _, vrb := range vars {
			if err := validenv(vrb); err != nil {
				return err
			}
			env = append(env, vrb)
		}
		r.cmd.Env = env
		return nil
	}
}

func validenv(vrb string) error {
	if name, _, ok := strings.Cut(vrb, "="); !ok || name == "" {
		return fmt.Errorf("invalid env format; %s doesn't match NAME=value expectation", vrb)
	}
	return nil
}

// WithArgs command arguments.
func WithArgs(args ...string) RunnerOpt {
	return func(r *TaskRunner) error {
		r.Arguments = args
		return nil
	}
}

// WithOKMsg sets a message to be printed when the command finishes successfully.
func WithOKMsg(msg string) RunnerOpt {
	return func(r *TaskRunner) error {
		r.okmsg = msg
		return nil
	}
}

// WithStdOut set up stdout writer.
func WithStdOut(w io.Writer) RunnerOpt {
	return func(r *TaskRunner) error {
		r.cmd.Stdout = w
		return nil
	}
}

// WithLogOutput sets where the runner logs the command and its outcome.
func WithLogOutput(w io.Writer) RunnerOpt {
	return func(r *TaskRunner) error {
		r.out = w
		return nil
	}
}

// WithAllowExitErrors treats a command that ran but exited with a non-zero
// code as successful. Failures to start the command are still returned.
func WithAllowExitErrors() RunnerOpt {
	return func(r *TaskRunner) error {
		r.allowexiterr = true
		return nil
	}
}
