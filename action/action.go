// Package action binds the installer to the GitHub Actions runner.
//
// Inputs are read from the INPUT_* variables the runner sets for the step,
// path additions go to the GITHUB_PATH file and outputs to the GITHUB_OUTPUT
// file. Outside of a runner the [ConsoleHost] prints them instead.
package action

import (
	"errors"
	"fmt"
	"io"

	"github.com/sethvargo/go-githubactions"

	setupfirebase "github.com/aexvir/setup-firebase"
)

const (
	InputInstallPath = "install-path"
	InputVersion     = "version"
)

type config struct {
	getenv func(string) string
	out    io.Writer
}

type Option func(c *config)

// WithGetenv replaces the function variables are read with.
func WithGetenv(getenv func(string) string) Option {
	return func(c *config) {
		c.getenv = getenv
	}
}

// WithWriter sets where workflow commands are written to.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		c.out = w
	}
}

// New returns the runner binding.
func New(opts ...Option) *githubactions.Action {
	var conf config
	for _, opt := range opts {
		opt(&conf)
	}

	var gaopts []githubactions.Option
	if conf.getenv != nil {
		gaopts = append(gaopts, githubactions.WithGetenv(conf.getenv))
	}
	if conf.out != nil {
		gaopts = append(gaopts, githubactions.WithWriter(conf.out))
	}

	return githubactions.New(gaopts...)
}

// ReadRequest builds the installation request from the step inputs.
func ReadRequest(a *githubactions.Action) setupfirebase.Request {
	return setupfirebase.Request{
		InstallPath: a.GetInput(InputInstallPath),
		Version:     a.GetInput(InputVersion),
	}
}

// Fail reports err as the failure reason of the step.
// The message is reported verbatim, without the failure kind.
func Fail(a *githubactions.Action, err error) {
	if err == nil {
		err = errors.New("installation failed")
	}
	a.Errorf("%s", err.Error())
}

// IsGitHubActions returns true when running as a GitHub Actions step.
func IsGitHubActions(getenv func(string) string) bool {
	return getenv("GITHUB_ACTIONS") == "true"
}

// Host reports to the runner through its environment files.
type Host struct {
	action *githubactions.Action
}

// NewHost adapts a to [setupfirebase.Host].
func NewHost(a *githubactions.Action) *Host {
	return &Host{action: a}
}

func (h *Host) AddPath(dir string) (err error) {
	defer recoverto(&err)
	h.action.AddPath(dir)
	return nil
}

func (h *Host) SetOutput(name, value string) (err error) {
	defer recoverto(&err)
	h.action.SetOutput(name, value)
	return nil
}

// the runner library panics when it can't write a file command.
func recoverto(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if rerr, ok := r.(error); ok {
		*err = rerr
		return
	}
	*err = fmt.Errorf("%v", r)
}

// ConsoleHost prints what would be reported to a runner, one line each.
type ConsoleHost struct {
	out io.Writer
}

func NewConsoleHost(w io.Writer) *ConsoleHost {
	return &ConsoleHost{out: w}
}

func (h *ConsoleHost) AddPath(dir string) error {
	_, err := fmt.Fprintf(h.out, "path: %s\n", dir)
	return err
}

func (h *ConsoleHost) SetOutput(name, value string) error {
	_, err := fmt.Fprintf(h.out, "%s=%s\n", name, value)
	return err
}
