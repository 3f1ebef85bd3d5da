package shutdown

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/lfx-mentorship/pkg/logging"
)

func TestGraceful_StopsTargetsInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var order []string
	first := StopFunc(func(context.Context) error { order = append(order, "first"); return nil })
	second := StopFunc(func(context.Context) error { order = append(order, "second"); return nil })

	err := Graceful(ctx, []os.Signal{os.Interrupt}, time.Second, logging.NewNop(), first, nil, second)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestGraceful_JoinsErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	boom := errors.New("boom")
	called := false
	failing := StopFunc(func(context.Context) error { return boom })
	after := StopFunc(func(context.Context) error { called = true; return nil })

	err := Graceful(ctx, []os.Signal{os.Interrupt}, time.Second, logging.NewNop(), failing, after)
	require.ErrorIs(t, err, boom)
	assert.True(t, called)
}

func TestOnce_ReleasesResourcesAfterServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var order []string
	server := StopFunc(func(context.Context) error { order = append(order, "server"); return nil })
	release := Once(func() { order = append(order, "resources") })

	err := Graceful(ctx, []os.Signal{os.Interrupt}, time.Second, logging.NewNop(), server, release)
	require.NoError(t, err)

	require.NoError(t, release(context.Background()))
	assert.Equal(t, []string{"server", "resources"}, order)
}
