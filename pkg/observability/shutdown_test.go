package observability

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownManager_RunsFuncsInOrder(t *testing.T) {
	sm := NewShutdownManager(NewLogger(ErrorLevel, &bytes.Buffer{}), time.Second)

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		sm.RegisterShutdownFunc(func(context.Context) error {
			order = append(order, i)
			return nil
		})
	}

	require.NoError(t, sm.Shutdown(context.Background()))
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestShutdownManager_JoinsErrors(t *testing.T) {
	sm := NewShutdownManager(NewLogger(ErrorLevel, &bytes.Buffer{}), time.Second)

	errA := errors.New("a failed")
	errB := errors.New("b failed")
	ran := false
	sm.RegisterShutdownFunc(func(context.Context) error { return errA })
	sm.RegisterShutdownFunc(func(context.Context) error { ran = true; return nil })
	sm.RegisterShutdownFunc(func(context.Context) error { return errB })

	err := sm.Shutdown(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.True(t, ran, "a failing hook must not stop later hooks")
}

func TestShutdownManager_StopsServers(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &http.Server{Handler: http.NotFoundHandler()}
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	sm := NewShutdownManager(NewLogger(ErrorLevel, &bytes.Buffer{}), time.Second, srv, nil)
	require.NoError(t, sm.Shutdown(context.Background()))

	select {
	case err := <-served:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestShutdownManager_ExpiredContextSkipsHooks(t *testing.T) {
	sm := NewShutdownManager(NewLogger(ErrorLevel, &bytes.Buffer{}), time.Second)

	called := false
	sm.RegisterShutdownFunc(func(context.Context) error { called = true; return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sm.Shutdown(ctx)
	assert.Error(t, err)
	assert.False(t, called)
}
