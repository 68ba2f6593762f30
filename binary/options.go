package binary

import "io"

type Option func(b *Binary)

// WithDirectory sets the directory the binary will be installed in.
// The value is used as is; callers are expected to normalize it beforehand.
func WithDirectory(dir string) Option {
	return func(b *Binary) {
		b.template.Directory = dir
	}
}

// WithGOOS overrides the operating system reported to the origin.
// Applied before any mapping option that follows it.
func WithGOOS(goos string) Option {
	return func(b *Binary) {
		b.template.GOOS = goos
	}
}

// WithGOARCH overrides the architecture reported to the origin.
func WithGOARCH(goarch string) Option {
	return func(b *Binary) {
		b.template.GOARCH = goarch
	}
}

// WithGOOSMapping allows remapping the value of GOOS in the template
// before triggering the installation.
// This is useful for example in cases where a binary gets distributed as
// `binname-macos` and using the `binname-{{ GOOS }}` template with the default
// value would resolve to `binname-darwin` which doesn't exist.
// The key of the map is the GOOS value and the value is the wanted
// replacement; for the case mentioned earlier, pass {"darwin": "macos"}.
func WithGOOSMapping(mapping map[string]string) Option {
	return func(b *Binary) {
		if replacement, ok := mapping[b.template.GOOS]; ok {
			b.template.GOOS = replacement
		}
	}
}

// WithOutput sets where installation progress is logged to.
func WithOutput(w io.Writer) Option {
	return func(b *Binary) {
		b.out = w
	}
}
