package actuator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errTest = errors.New("boom")

func TestMatchesDeviceName(t *testing.T) {
	require.True(t, MatchesDeviceName("Echo Show 5", "Echo Show 5"))
	require.True(t, MatchesDeviceName("Echo Show 5", "echo show"))
	require.True(t, MatchesDeviceName("echo show", "Echo Show 5"))
	require.True(t, MatchesDeviceName("  Echo Show 5  ", "echo show 5"))

	require.False(t, MatchesDeviceName("Kitchen Speaker", "Echo Show 5"))
	require.False(t, MatchesDeviceName("", "Echo Show 5"))
	require.False(t, MatchesDeviceName("Echo Show 5", ""))
}

func TestClampPercent(t *testing.T) {
	require.Equal(t, 100, ClampPercent(150))
	require.Equal(t, 0, ClampPercent(-10))
	require.Equal(t, 0, ClampPercent(0))
	require.Equal(t, 100, ClampPercent(100))
	require.Equal(t, 42, ClampPercent(42))
}

func TestOutcome_Helpers(t *testing.T) {
	ok := Success("connected")
	require.True(t, ok.OK)
	require.Equal(t, "connected", ok.Detail)

	failed := Failure(errTest)
	require.False(t, failed.OK)
	require.Equal(t, "boom", failed.Detail)

	require.False(t, Failure(nil).OK)
}
