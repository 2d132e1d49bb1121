package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigurationError_FormatsCategory(t *testing.T) {
	err := ConfigurationError("bad size %d", -1)
	require.ErrorContains(t, err, "mergesort: configuration: bad size -1")
}

func TestWrap_NilCauseReturnsNil(t *testing.T) {
	require.NoError(t, Wrap(Scheduling, nil))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(Messaging, cause)
	require.ErrorIs(t, err, cause)
}

func TestTaggedSchedulingError_IncludesRange(t *testing.T) {
	err := TaggedSchedulingError(10, 20, errors.New("worker panicked"))
	require.ErrorContains(t, err, "[10:20]")
	require.ErrorContains(t, err, "worker panicked")
}

func TestTaggedSchedulingError_NilCauseReturnsNil(t *testing.T) {
	require.NoError(t, TaggedSchedulingError(0, 1, nil))
}

func TestTaggedSchedulingError_Unwraps(t *testing.T) {
	cause := errors.New("closed channel")
	err := TaggedSchedulingError(1, 2, cause)
	require.ErrorIs(t, err, cause)
}
