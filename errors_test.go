package setupfirebase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepError(t *testing.T) {
	err := fail(KindDownloadFailure, "download", assert.AnError)

	assert.Equal(t, assert.AnError.Error(), err.Error())
	assert.ErrorIs(t, err, assert.AnError)

	var serr *StepError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "download", serr.Step)
	assert.Equal(t, KindDownloadFailure, serr.Kind)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindSpawnFailure, KindOf(failf(KindSpawnFailure, "verify", "unable to locate %s", "firebase")))
	assert.Equal(t, KindFilesystemFailure, KindOf(fmt.Errorf("wrapped: %w", fail(KindFilesystemFailure, "chmod", assert.AnError))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "unsupported platform", KindUnsupportedPlatform.String())
	assert.Equal(t, "download failure", KindDownloadFailure.String())
	assert.Equal(t, "filesystem failure", KindFilesystemFailure.String())
	assert.Equal(t, "spawn failure", KindSpawnFailure.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
