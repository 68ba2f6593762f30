package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"

	setupfirebase "github.com/aexvir/setup-firebase"
	"github.com/aexvir/setup-firebase/action"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gha := action.New()
	ci := action.IsGitHubActions(os.Getenv)

	if err := newRootCmd(gha, host(gha, ci)).ExecuteContext(ctx); err != nil {
		if ci {
			action.Fail(gha, err)
		} else {
			color.New(color.FgRed).Fprintf(os.Stderr, "%s\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// host reports to the runner when running as an action step and to stdout
// otherwise.
func host(gha *githubactions.Action, ci bool) setupfirebase.Host {
	if ci {
		return action.NewHost(gha)
	}
	return action.NewConsoleHost(os.Stdout)
}

// newRootCmd wires the installer to the runner. Flags default to the step
// inputs, so the same binary runs as an action step and from a shell.
func newRootCmd(gha *githubactions.Action, h setupfirebase.Host, opts ...setupfirebase.Option) *cobra.Command {
	req := action.ReadRequest(gha)

	cmd := &cobra.Command{
		Use:           "setup-firebase",
		Short:         "Install the standalone firebase CLI and put it on the PATH",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			installer := setupfirebase.New(
				append(
					[]setupfirebase.Option{
						setupfirebase.WithHost(h),
						setupfirebase.WithStdout(cmd.OutOrStdout()),
					},
					opts...,
				)...,
			)

			_, err := installer.Run(cmd.Context(), req)
			return err
		},
	}

	cmd.Flags().StringVar(&req.InstallPath, action.InputInstallPath, req.InstallPath, "directory to install firebase into, may start with $VAR")
	cmd.Flags().StringVar(&req.Version, "firebase-version", req.Version, "firebase version to download, e.g. v12.4.0 or latest")

	return cmd
}
