package events

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spidergraph/spider/pkg/ioc"
)

func TestEmitCallsListenersInOrder(t *testing.T) {
	e := NewEmitter()
	var got []string

	e.On("connected", func(_ context.Context, ev Event) error {
		got = append(got, "first:"+ev.Payload.(string))
		return nil
	})
	e.On("connected", func(_ context.Context, ev Event) error {
		got = append(got, "second:"+ev.Payload.(string))
		return nil
	})

	ev, err := e.Emit(context.Background(), "connected", "neo")
	require.NoError(t, err)
	assert.Equal(t, []string{"first:neo", "second:neo"}, got)
	assert.Equal(t, "connected", ev.Name)
	assert.NotEmpty(t, ev.ID)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestOnceAndRemove(t *testing.T) {
	e := NewEmitter()
	calls := 0
	count := func(context.Context, Event) error {
		calls++
		return nil
	}

	e.Once("x", count)
	off := e.On("x", count)
	assert.Equal(t, 2, e.ListenerCount("x"))

	_, err := e.Emit(context.Background(), "x", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, e.ListenerCount("x"))

	off()
	_, err = e.Emit(context.Background(), "x", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Empty(t, e.EventNames())
}

func TestEmitJoinsListenerErrors(t *testing.T) {
	e := NewEmitter()
	boom := stderrors.New("boom")
	reached := false

	e.On("x", func(context.Context, Event) error { return boom })
	e.On("x", func(context.Context, Event) error {
		reached = true
		return nil
	})

	_, err := e.Emit(context.Background(), "x", nil)
	assert.ErrorIs(t, err, boom)
	assert.True(t, reached)
}

func TestEmitStopsOnCancelledContext(t *testing.T) {
	e := NewEmitter()
	called := false
	e.On("x", func(context.Context, Event) error {
		called = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Emit(ctx, "x", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRemoveAll(t *testing.T) {
	e := NewEmitter()
	noop := func(context.Context, Event) error { return nil }
	e.On("a", noop)
	e.On("b", noop)

	assert.Equal(t, []string{"a", "b"}, e.EventNames())
	e.RemoveAll("a")
	assert.Equal(t, []string{"b"}, e.EventNames())
	e.RemoveAll("")
	assert.Empty(t, e.EventNames())
}

func TestRegisteredType(t *testing.T) {
	ctor, ok := ioc.GetTypeRegistry().Lookup(TypeName)
	require.True(t, ok)

	v, err := ctor()
	require.NoError(t, err)
	assert.IsType(t, &Emitter{}, v)
}
