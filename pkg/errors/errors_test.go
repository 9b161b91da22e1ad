package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSentinelsMatchByType(t *testing.T) {
	err := New(ErrorTypeServiceNotFound, "service cache not found")

	assert.True(t, stderrors.Is(err, ErrServiceNotFound))
	assert.False(t, stderrors.Is(err, ErrConnectionNotFound))
	assert.False(t, stderrors.Is(err, New(ErrorTypeServiceNotFound, "another message")))
}

func TestWrapPreservesStackAndCause(t *testing.T) {
	inner := New(ErrorTypeConfig, "driver factory failed")
	outer := Wrap(inner, ErrorTypeConnectionNotFound, "cannot open connection")

	require.NotNil(t, outer)
	assert.Equal(t, inner.Stack, outer.Stack)
	assert.True(t, IsType(outer, ErrorTypeConnectionNotFound))
	assert.True(t, stderrors.Is(outer, ErrConnectionNotFound))

	var cause *Error
	require.True(t, stderrors.As(outer.Unwrap(), &cause))
	assert.Equal(t, ErrorTypeConfig, cause.Type)

	assert.Nil(t, Wrap(nil, ErrorTypeConfig, "nothing"))
}

func TestSentinelThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("configure: %w", New(ErrorTypeInvalidArgument, "alias must be a string"))
	assert.True(t, stderrors.Is(err, ErrInvalidArgument))
	assert.Equal(t, "invalid_argument", ErrInvalidArgument.Error())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   interface{}
		want Level
		ok   bool
	}{
		{"fatal", LevelFatal, true},
		{" Quiet ", LevelQuiet, true},
		{"silent", LevelSilent, true},
		{"warning", "", false},
		{3, "", false},
		{nil, "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.ok, ok, "input %v", tt.in)
		assert.Equal(t, tt.want, got, "input %v", tt.in)
	}
}

func TestPolicyLevelFallback(t *testing.T) {
	assert.Equal(t, LevelSilent, Policy{}.LevelFor())
	assert.Equal(t, LevelFatal, Policy{All: LevelFatal}.LevelFor())
	assert.Equal(t, LevelQuiet, Policy{NotSupported: LevelQuiet, All: LevelFatal}.LevelFor())
	assert.Equal(t, LevelSilent, DefaultPolicy().LevelFor())
}

func TestPolicyQuietLogsWarning(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)

	err := Policy{NotSupported: LevelQuiet}.NotSupportedf(log, "%s paths", "shortest")
	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "not supported: shortest paths", logs.All()[0].Message)

	err = Policy{NotSupported: LevelFatal}.NotSupportedf(log, "%s paths", "shortest")
	assert.True(t, IsType(err, ErrorTypeNotSupported))
	assert.Equal(t, 1, logs.Len())
}
