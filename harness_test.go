package setupfirebase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarness_Execute(t *testing.T) {
	var calls []string
	record := func(name string) Task {
		return func(_ context.Context) error {
			calls = append(calls, name)
			return nil
		}
	}

	var out bytes.Buffer
	h := NewHarness(
		WithHarnessOutput(&out),
		WithPreExecFunc(record("pre")),
		WithPostExecFunc(record("post")),
	)

	err := h.Execute(context.Background(), record("one"), record("two"))
	require.NoError(t, err)

	assert.Equal(t, []string{"pre", "one", "two", "post"}, calls)
	assert.Contains(t, out.String(), "all good")
}

func TestHarness_Execute_StopsAtFirstFailure(t *testing.T) {
	failure := errors.New("boom")

	var calls []string
	h := NewHarness(
		WithHarnessOutput(&bytes.Buffer{}),
		WithPostExecFunc(func(_ context.Context) error {
			calls = append(calls, "post")
			return nil
		}),
	)

	err := h.Execute(
		context.Background(),
		func(_ context.Context) error { calls = append(calls, "one"); return nil },
		func(_ context.Context) error { calls = append(calls, "two"); return failure },
		func(_ context.Context) error { calls = append(calls, "three"); return nil },
	)

	assert.Same(t, failure, err)
	assert.Equal(t, []string{"one", "two"}, calls)
}

func TestHarness_Execute_PreExecFailure(t *testing.T) {
	ran := false
	h := NewHarness(
		WithHarnessOutput(&bytes.Buffer{}),
		WithPreExecFunc(func(_ context.Context) error { return assert.AnError }),
	)

	err := h.Execute(context.Background(), func(_ context.Context) error { ran = true; return nil })

	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to initialize harness")
	assert.False(t, ran)
}

func TestHarness_Execute_KeepsStepErrors(t *testing.T) {
	h := NewHarness(WithHarnessOutput(&bytes.Buffer{}))

	err := h.Execute(
		context.Background(),
		func(_ context.Context) error { return fail(KindFilesystemFailure, "chmod", assert.AnError) },
	)

	assert.Equal(t, KindFilesystemFailure, KindOf(err))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestHarness_Execute_PostExecFailure(t *testing.T) {
	var out bytes.Buffer
	h := NewHarness(
		WithHarnessOutput(&out),
		WithPostExecFunc(func(_ context.Context) error { return fail(KindFilesystemFailure, "report", assert.AnError) }),
	)

	err := h.Execute(context.Background(), func(_ context.Context) error { return nil })

	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, KindFilesystemFailure, KindOf(err))
	assert.Contains(t, err.Error(), "failed to run post exec hook")
	assert.Contains(t, out.String(), "✘ failed after")
}
