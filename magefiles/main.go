//go:build mage

package main

import (
	"context"

	setupfirebase "github.com/aexvir/setup-firebase"
)

var h = setupfirebase.NewHarness(
	setupfirebase.WithPreExecFunc(
		func(ctx context.Context) error { // ensure go mod download is run before any task
			return setupfirebase.Run(ctx, "go", setupfirebase.WithArgs("mod", "download"))
		},
	),
)

func gotask(args ...string) setupfirebase.Task {
	return func(ctx context.Context) error {
		return setupfirebase.Run(ctx, "go", setupfirebase.WithArgs(args...))
	}
}

// format codebase using gofmt
func Format(ctx context.Context) error {
	return h.Execute(
		ctx,
		func(ctx context.Context) error {
			return setupfirebase.Run(ctx, "gofmt", setupfirebase.WithArgs("-s", "-w", "."))
		},
	)
}

// lint the code using go mod tidy and go vet
func Lint(ctx context.Context) error {
	return h.Execute(
		ctx,
		gotask("mod", "tidy"),
		gotask("vet", "./..."),
	)
}

// run unit tests
func Test(ctx context.Context) error {
	return h.Execute(
		ctx,
		gotask("test", "-race", "-cover", "./..."),
	)
}

// build the action binary
func Build(ctx context.Context) error {
	return h.Execute(
		ctx,
		func(ctx context.Context) error {
			return setupfirebase.Run(
				ctx,
				"go",
				setupfirebase.WithArgs("build", "-o", "bin/setup-firebase", "./cmd/setup-firebase"),
				setupfirebase.WithEnv("CGO_ENABLED=0"),
			)
		},
	)
}
