package setupfirebase

import (
	"io"
	"net/http"
	"strings"
	"time"
)

type Option func(i *Installer)

// WithEnvironment sets the environment variables are read from and the
// search path is updated in.
func WithEnvironment(env Environment) Option {
	return func(i *Installer) {
		i.env = env
	}
}

// WithHost sets the runner outputs and path additions are reported to.
func WithHost(host Host) Option {
	return func(i *Installer) {
		i.host = host
	}
}

// WithGOOS overrides the detected operating system.
func WithGOOS(goos string) Option {
	return func(i *Installer) {
		i.goos = goos
	}
}

// WithGOARCH overrides the detected architecture.
func WithGOARCH(goarch string) Option {
	return func(i *Installer) {
		i.goarch = goarch
	}
}

// WithBaseURL changes where binaries are downloaded from.
// The channel and version are appended as path segments.
func WithBaseURL(url string) Option {
	return func(i *Installer) {
		i.baseurl = strings.TrimSuffix(url, "/")
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(i *Installer) {
		i.client = client
	}
}

// WithClock replaces the source of the completion time.
func WithClock(now func() time.Time) Option {
	return func(i *Installer) {
		i.now = now
	}
}

// WithStdout sets where the output of the version check and the summary go.
func WithStdout(w io.Writer) Option {
	return func(i *Installer) {
		i.stdout = w
	}
}
