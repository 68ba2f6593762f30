// Package setupfirebase installs the standalone firebase CLI on a CI runner.
//
// The installation is a fixed sequence of steps: the host platform is mapped
// to a download channel, the install directory is resolved, the binary is
// downloaded and made executable, its directory is put on the search path and
// the binary is run once with --version, which also takes care of the setup
// firebase performs on its first run. The binary path and the completion time
// are then published as step outputs.
//
//	installer := setupfirebase.New(setupfirebase.WithHost(action.NewHost(action.New())))
//	result, err := installer.Run(ctx, setupfirebase.Request{InstallPath: "$HOME/bin", Version: "v12.4.0"})
package setupfirebase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/aexvir/setup-firebase/binary"
	"github.com/aexvir/setup-firebase/envpath"
	"github.com/aexvir/setup-firebase/platform"
)

const (
	// DefaultBaseURL is where firebase publishes its standalone binaries.
	DefaultBaseURL = "https://firebase.tools/bin"
	// BinaryName is the file name the binary gets on disk.
	BinaryName = "firebase"

	OutputBinaryPath = "firebase-binary-path"
	OutputTime       = "time"

	// TimeFormat renders the time of day followed by the zone offset and abbreviation.
	TimeFormat = "15:04:05 GMT-0700 (MST)"
)

// Request holds the inputs of an installation.
type Request struct {
	// InstallPath is the target directory, optionally starting with $NAME.
	InstallPath string
	// Version is inserted verbatim in the download url.
	Version string
}

// Result holds the outputs of a successful installation.
type Result struct {
	BinaryPath string
	Time       string
}

// Host is the CI runner the installation reports to.
type Host interface {
	// AddPath makes dir available on the search path of subsequent steps.
	AddPath(dir string) error
	// SetOutput publishes a step output.
	SetOutput(name, value string) error
}

type nophost struct{}

func (nophost) AddPath(string) error           { return nil }
func (nophost) SetOutput(string, string) error { return nil }

// Installer provisions the firebase binary.
type Installer struct {
	env     Environment
	host    Host
	goos    string
	goarch  string
	baseurl string
	client  *http.Client
	now     func() time.Time
	stdout  io.Writer
}

// New constructs an installer for the current process and platform.
func New(opts ...Option) *Installer {
	inst := Installer{
		env:     OSEnvironment{},
		host:    nophost{},
		goos:    runtime.GOOS,
		goarch:  runtime.GOARCH,
		baseurl: DefaultBaseURL,
		client:  http.DefaultClient,
		now:     time.Now,
		stdout:  os.Stdout,
	}

	for _, opt := range opts {
		opt(&inst)
	}

	return &inst
}

// Run performs the installation described by req.
// Any failure stops the installation and is returned wrapping a [*StepError];
// the outputs are only published once every step succeeded.
func (i *Installer) Run(ctx context.Context, req Request) (*Result, error) {
	inst := installation{Installer: i, req: req}

	harness := NewHarness(
		WithHarnessOutput(i.stdout),
		WithPostExecFunc(inst.report),
	)

	err := harness.Execute(
		ctx,
		inst.resolve,
		inst.normalize,
		inst.download,
		inst.chmod,
		inst.path,
		inst.verify,
	)
	if err != nil {
		return nil, err
	}

	return &inst.result, nil
}

// installation holds the state shared by the steps of a single run.
type installation struct {
	*Installer

	req     Request
	channel string
	dir     string
	bin     *binary.Binary
	result  Result
}

func (s *installation) resolve(ctx context.Context) error {
	channel, err := platform.Channel(s.goos)
	if err != nil {
		return fail(KindUnsupportedPlatform, "resolve", err)
	}
	s.channel = channel

	logstep(s.stdout, fmt.Sprintf("installing firebase %s from the %s channel", s.req.Version, channel))
	logdetail(s.stdout, fmt.Sprintf("host %s", platform.Describe(ctx)))
	return nil
}

func (s *installation) normalize(_ context.Context) error {
	s.dir = envpath.Resolve(s.req.InstallPath, s.env.LookupEnv)

	s.bin = binary.New(
		BinaryName,
		s.req.Version,
		binary.RemoteBinaryDownload(
			s.baseurl+"/{{.GOOS}}/{{.Version}}",
			binary.WithHTTPClient(s.client),
			binary.WithLogOutput(s.stdout),
		),
		binary.WithDirectory(s.dir),
		binary.WithGOOS(s.goos),
		binary.WithGOARCH(s.goarch),
		binary.WithGOOSMapping(platform.Channels),
		binary.WithOutput(s.stdout),
	)

	logdetail(s.stdout, fmt.Sprintf("install path %q resolved to %s", s.req.InstallPath, s.dir))
	return nil
}

func (s *installation) download(ctx context.Context) error {
	if err := s.bin.Install(ctx); err != nil {
		return fail(KindDownloadFailure, "download", err)
	}

	logdetail(s.stdout, fmt.Sprintf("file was downloaded to %s", s.bin.BinPath()))
	return nil
}

func (s *installation) chmod(_ context.Context) error {
	if err := s.bin.MakeExecutable(); err != nil {
		return fail(KindFilesystemFailure, "chmod", err)
	}
	return nil
}

func (s *installation) path(_ context.Context) error {
	if err := PrependPath(s.env, s.dir); err != nil {
		return fail(KindFilesystemFailure, "path", err)
	}
	if err := s.host.AddPath(s.dir); err != nil {
		return failf(KindFilesystemFailure, "path", "unable to export %s: %w", s.dir, err)
	}

	logdetail(s.stdout, fmt.Sprintf("added %s to %s", s.dir, PathVar))
	return nil
}

// verify runs the binary once; firebase performs its initial setup on the
// first run. Only failures to locate or start the binary are errors.
func (s *installation) verify(ctx context.Context) error {
	executable, err := LookPath(s.env, BinaryName)
	if err != nil {
		return failf(KindSpawnFailure, "verify", "unable to locate %s: %w", BinaryName, err)
	}

	err = Run(
		ctx,
		executable,
		WithArgs("--version"),
		WithEnviron(s.env.Environ()),
		WithStdOut(s.stdout),
		WithLogOutput(s.stdout),
		WithAllowExitErrors(),
		WithOKMsg(fmt.Sprintf("   %s is ready", executable)),
	)
	if err != nil {
		return fail(KindSpawnFailure, "verify", err)
	}

	return nil
}

func (s *installation) report(_ context.Context) error {
	s.result = Result{
		BinaryPath: s.bin.BinPath(),
		Time:       s.now().Format(TimeFormat),
	}

	for _, output := range [][2]string{
		{OutputBinaryPath, s.result.BinaryPath},
		{OutputTime, s.result.Time},
	} {
		if err := s.host.SetOutput(output[0], output[1]); err != nil {
			return failf(KindFilesystemFailure, "report", "unable to publish %s: %w", output[0], err)
		}
	}

	return nil
}
