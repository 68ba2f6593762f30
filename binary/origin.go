package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Origin defines the interface for provisioning binaries from different sources.
type Origin interface {
	// Install performs the installation of a binary.
	// The template contains information about the target environment and desired configuration.
	Install(ctx context.Context, template Template) error
}

// remotebin implements [Origin] for direct binary downloads from a URL.
// It supports downloading a single executable file from a remote location.
type remotebin struct {
	urlformat string
	client    *http.Client
	out       io.Writer
}

// RemoteBinaryDownload creates a new Origin that downloads a binary directly from a URL.
// The URL can contain template variables that will be resolved using the [Template] values
// during installation.
// e.g. "https://firebase.tools/bin/{{.GOOS}}/{{.Version}}"
//
// Requests go through [http.DefaultClient] and progress is logged to stdout
// unless overridden with a [RemoteOption].
func RemoteBinaryDownload(url string, opts ...RemoteOption) Origin {
	r := remotebin{
		urlformat: url,
		client:    http.DefaultClient,
		out:       os.Stdout,
	}

	for _, opt := range opts {
		opt(&r)
	}

	return &r
}

// RemoteOption customizes a remote download origin.
type RemoteOption func(r *remotebin)

// WithHTTPClient sets the client used for the download; nil keeps the default.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(r *remotebin) {
		if client != nil {
			r.client = client
		}
	}
}

// WithLogOutput sets where download progress is logged to.
func WithLogOutput(w io.Writer) RemoteOption {
	return func(r *remotebin) {
		r.out = w
	}
}

// Install downloads the binary to template.Cmd, replacing any existing file.
// Nothing is written when the server doesn't answer with a 2xx status; a
// failure while streaming the body leaves the partial file in place.
func (r *remotebin) Install(ctx context.Context, template Template) (err error) {
	if err := os.MkdirAll(template.Directory, 0o755); err != nil {
		return fmt.Errorf("failed to create destination folder %s: %w", template.Directory, err)
	}

	url, err := template.Resolve(r.urlformat)
	if err != nil {
		return fmt.Errorf("failed to resolve URL: %w", err)
	}

	logdetail(r.out, fmt.Sprintf("downloading %s to %s", url, template.Cmd))

	start := time.Now()
	defer func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			color.New(color.FgRed).Fprintf(r.out, "     ✘ %s\n", elapsed)
			return
		}
		color.New(color.FgGreen).Fprintf(r.out, "     ✔ %s\n", elapsed)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download binary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("received unexpected response when downloading binary from %s: http%d", url, resp.StatusCode)
	}

	data, finish := progress(resp.Body, resp.ContentLength)
	defer finish()

	out, err := os.Create(template.Cmd)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", template.Cmd, err)
	}

	if _, err := io.Copy(out, data); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy data to file %s: %w", template.Cmd, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to flush file %s: %w", template.Cmd, err)
	}

	return nil
}

// progress wraps an io.Reader to display a progress bar when running in a terminal.
// Returns the wrapped reader and a function to finalize the progress display.
// The progress bar shows transfer speed and completion percentage.
func progress(reader io.Reader, size int64) (io.Reader, func()) {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return reader, func() {}
	}

	bar := pb.
		New64(size).
		SetTemplate(
			pb.ProgressBarTemplate(
				color.New(color.FgHiBlack).Sprint(
					`   └ {{string . "prefix"}}{{counters . }}` +
						` {{bar . "[" "=" ">" " " "]" }} {{percent . }}` +
						` {{speed . }} {{string . "suffix"}}`,
				),
			),
		).
		SetRefreshRate(time.Second / 60).
		SetMaxWidth(100).
		Start()

	return bar.NewProxyReader(reader), func() { bar.Finish() }
}

func logstep(w io.Writer, text string) {
	fmt.Fprintln(
		w,
		color.BlueString(" •"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}

func logdetail(w io.Writer, text string) {
	fmt.Fprintln(
		w,
		color.New(color.FgHiBlack).Sprint("   └"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}
