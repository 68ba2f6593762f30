package setupfirebase

import (
	"errors"
	"fmt"
)

// Kind classifies why an installation failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnsupportedPlatform
	KindDownloadFailure
	KindFilesystemFailure
	KindSpawnFailure
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedPlatform:
		return "unsupported platform"
	case KindDownloadFailure:
		return "download failure"
	case KindFilesystemFailure:
		return "filesystem failure"
	case KindSpawnFailure:
		return "spawn failure"
	default:
		return "unknown"
	}
}

// StepError is returned by [Installer.Run] for any failed step.
// Error returns the message of the underlying error only, which is what gets
// reported to the runner.
type StepError struct {
	Kind Kind
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func fail(kind Kind, step string, err error) error {
	return &StepError{Kind: kind, Step: step, Err: err}
}

func failf(kind Kind, step, format string, args ...any) error {
	return fail(kind, step, fmt.Errorf(format, args...))
}

// KindOf returns the kind of a failure returned by [Installer.Run], or
// [KindUnknown] for any other error.
func KindOf(err error) Kind {
	var serr *StepError
	if errors.As(err, &serr) {
		return serr.Kind
	}
	return KindUnknown
}
