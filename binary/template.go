package binary

import (
	"strings"
	"text/template"
)

// Template contains fields used to resolve specific metadata about the binary.
// It includes platform information, binary location details, and version information.
type Template struct {
	// GOOS is the operating system target, after any mapping was applied (e.g. "linux", "macos")
	GOOS string
	// GOARCH is the architecture target (e.g. "amd64", "arm64")
	GOARCH string

	// Directory where the binary is located
	Directory string
	// Name of the binary
	Name string
	// Cmd is the path to the binary, Directory and Name joined by a forward slash
	Cmd string
	// Version is passed through untouched, e.g. "v12.4.0" or "latest"
	Version string
}

// Resolve executes the provided format string as a template with the Template's fields.
// It returns the resolved string and any error that occurred during template parsing or execution.
func (t Template) Resolve(format string) (string, error) {
	tmpl, err := template.New("bin").Option("missingkey=error").Parse(format)
	if err != nil {
		return "", err
	}

	var bld strings.Builder
	if err := tmpl.Execute(&bld, t); err != nil {
		return "", err
	}

	return bld.String(), nil
}
