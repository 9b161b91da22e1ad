package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spidergraph/spider/pkg/connection"
	"github.com/spidergraph/spider/pkg/errors"
	"github.com/spidergraph/spider/pkg/logger"
	"github.com/spidergraph/spider/pkg/testutil"
)

func openConnection(t *testing.T) *connection.Connection {
	t.Helper()
	conn, err := connection.Open("neo", connection.Definition{"driver": "stub"}, testutil.StubDrivers(t, "stub"))
	require.NoError(t, err)
	return conn
}

func TestBuilderAccessors(t *testing.T) {
	conn := openConnection(t)
	b := NewBuilder(conn, errors.DefaultPolicy())

	assert.Same(t, conn, b.Connection())
	assert.Equal(t, "stub", b.Driver().Name())
	assert.Equal(t, errors.DefaultPolicy(), b.Policy())

	require.NoError(t, b.Close(context.Background()))
	assert.True(t, b.Driver().(*testutil.StubDriver).Closed())
}

func TestNotSupportedFollowsPolicy(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	conn := openConnection(t)

	err := NewBuilder(conn, errors.Policy{NotSupported: errors.LevelFatal}).NotSupported("shortest path")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotSupported))
	assert.Contains(t, err.Error(), "shortest path")

	err = NewBuilder(conn, errors.Policy{NotSupported: errors.LevelQuiet}).NotSupported("shortest path")
	assert.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "neo", logs.All()[0].ContextMap()["alias"])

	err = NewBuilder(conn, errors.Policy{All: errors.LevelSilent}).NotSupported("shortest path")
	assert.NoError(t, err)
	assert.Equal(t, 1, logs.Len())
}
