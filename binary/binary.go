package binary

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
)

// DefaultDirectory is used when no directory option is provided.
const DefaultDirectory = "./bin"

type Binary struct {
	origin   Origin
	template Template
	out      io.Writer
}

// New describes a binary called name, at the given version, provisioned by origin.
// The version is treated as an opaque token and passed verbatim to the origin.
func New(name, version string, origin Origin, options ...Option) *Binary {
	bin := Binary{
		origin: origin,
		out:    os.Stdout,
		template: Template{
			GOOS:   runtime.GOOS,
			GOARCH: runtime.GOARCH,

			Directory: DefaultDirectory,
			Name:      name,
			Version:   version,
		},
	}

	for _, opt := range options {
		opt(&bin)
	}

	// the command path is always the directory and the name joined by a forward
	// slash, without cleaning, so it can be derived from the directory input alone
	bin.template.Cmd = bin.template.Directory + "/" + name

	return &bin
}

// Name of the binary.
func (b *Binary) Name() string {
	return b.template.Name
}

// BinPath returns the path the binary is installed at.
func (b *Binary) BinPath() string {
	return b.template.Cmd
}

// Directory returns the directory the binary is installed in.
func (b *Binary) Directory() string {
	return b.template.Directory
}

// Template returns a copy of the resolved installation metadata.
func (b *Binary) Template() Template {
	return b.template
}

// Install provisions the binary using its origin.
func (b *Binary) Install(ctx context.Context) error {
	logstep(b.out, fmt.Sprintf("installing %s %s", b.Name(), b.template.Version))
	return b.origin.Install(ctx, b.template)
}

// MakeExecutable sets the binary permissions to rwxr-xr-x.
// The binary must already exist.
func (b *Binary) MakeExecutable() error {
	if _, err := os.Stat(b.template.Cmd); err != nil {
		return fmt.Errorf("binary not found at %s: %w", b.template.Cmd, err)
	}

	if err := os.Chmod(b.template.Cmd, 0o755); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", b.template.Cmd, err)
	}

	logdetail(b.out, fmt.Sprintf("set mode 0755 on %s", b.template.Cmd))
	return nil
}
