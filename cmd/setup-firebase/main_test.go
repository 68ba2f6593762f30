package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	setupfirebase "github.com/aexvir/setup-firebase"
	"github.com/aexvir/setup-firebase/action"
)

func TestRootCmd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts stand in for the firebase binary")
	}

	var requested string
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				requested = r.URL.Path
				w.Write([]byte("#!/bin/sh\necho 12.4.0\n"))
			},
		),
	)
	defer server.Close()

	tmpdir := filepath.ToSlash(t.TempDir())
	inputs := map[string]string{
		"INPUT_INSTALL-PATH": "$TOOLS",
		"INPUT_VERSION":      "v12.4.0",
	}

	outputfile := filepath.Join(t.TempDir(), "output")
	inputs["GITHUB_PATH"] = filepath.Join(t.TempDir(), "path")
	inputs["GITHUB_OUTPUT"] = outputfile

	gha := action.New(
		action.WithWriter(&bytes.Buffer{}),
		action.WithGetenv(func(key string) string { return inputs[key] }),
	)

	cmd := newRootCmd(
		gha,
		action.NewHost(gha),
		setupfirebase.WithEnvironment(setupfirebase.NewMapEnvironment(map[string]string{"TOOLS": tmpdir})),
		setupfirebase.WithGOOS("linux"),
		setupfirebase.WithBaseURL(server.URL),
		setupfirebase.WithHTTPClient(server.Client()),
	)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--firebase-version", "v13.0.0"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Equal(t, "/linux/v13.0.0", requested)
	assert.FileExists(t, tmpdir+"/firebase")
	outputs, err := os.ReadFile(outputfile)
	require.NoError(t, err)
	assert.Contains(t, string(outputs), tmpdir+"/firebase")
}

func TestRootCmd_ConsoleHost(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts stand in for the firebase binary")
	}

	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte("#!/bin/sh\necho 12.4.0\n"))
			},
		),
	)
	defer server.Close()

	tmpdir := filepath.ToSlash(t.TempDir())
	gha := action.New(action.WithGetenv(func(string) string { return "" }))

	var reported bytes.Buffer
	cmd := newRootCmd(
		gha,
		action.NewConsoleHost(&reported),
		setupfirebase.WithEnvironment(setupfirebase.NewMapEnvironment(nil)),
		setupfirebase.WithGOOS("linux"),
		setupfirebase.WithBaseURL(server.URL),
		setupfirebase.WithHTTPClient(server.Client()),
	)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--install-path", tmpdir, "--firebase-version", "latest"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, reported.String(), "path: "+tmpdir)
	assert.Contains(t, reported.String(), setupfirebase.OutputBinaryPath+"="+tmpdir+"/firebase")
}

func TestRootCmd_UnwritablePathFile(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte("#!/bin/sh\necho 12.4.0\n"))
			},
		),
	)
	defer server.Close()

	// a directory where the runner expects a file
	vars := map[string]string{
		"GITHUB_PATH":   t.TempDir(),
		"GITHUB_OUTPUT": t.TempDir(),
	}
	gha := action.New(
		action.WithWriter(&bytes.Buffer{}),
		action.WithGetenv(func(key string) string { return vars[key] }),
	)

	cmd := newRootCmd(
		gha,
		action.NewHost(gha),
		setupfirebase.WithEnvironment(setupfirebase.NewMapEnvironment(nil)),
		setupfirebase.WithGOOS("linux"),
		setupfirebase.WithBaseURL(server.URL),
		setupfirebase.WithHTTPClient(server.Client()),
	)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--install-path", filepath.ToSlash(t.TempDir()), "--firebase-version", "latest"})

	var err error
	require.NotPanics(t, func() { err = cmd.ExecuteContext(context.Background()) })
	require.Error(t, err)
	assert.Equal(t, setupfirebase.KindFilesystemFailure, setupfirebase.KindOf(err))
}

func TestRootCmd_UnsupportedPlatform(t *testing.T) {
	var commands bytes.Buffer
	gha := action.New(
		action.WithWriter(&commands),
		action.WithGetenv(func(string) string { return "" }),
	)

	cmd := newRootCmd(gha, action.NewHost(gha), setupfirebase.WithGOOS("windows"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--install-path", t.TempDir()})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Equal(t, setupfirebase.KindUnsupportedPlatform, setupfirebase.KindOf(err))
	assert.Empty(t, commands.String())

	action.Fail(gha, err)
	assert.Contains(t, commands.String(), "linux or macos")
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	gha := action.New(action.WithGetenv(func(string) string { return "" }))
	cmd := newRootCmd(gha, action.NewConsoleHost(&bytes.Buffer{}))
	cmd.SetArgs([]string{"unexpected"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}
