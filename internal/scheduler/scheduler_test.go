package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
)

func TestScheduler_Every(t *testing.T) {
	t.Run("returns job id for valid interval", func(t *testing.T) {
		s, err := New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Stop() })

		id, err := s.Every("sync", 10*time.Second, func(context.Context) error { return nil })
		require.NoError(t, err)
		require.NotEmpty(t, id)
	})

	t.Run("rejects non-positive interval", func(t *testing.T) {
		s, err := New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Stop() })

		_, err = s.Every("sync", 0, func(context.Context) error { return nil })
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	})
}

func TestScheduler_RunsTask(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	var runs atomic.Int32
	_, err = s.Every("tick", 20*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	require.NoError(t, err)

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())
}

func TestScheduler_StopCancelsTaskContext(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	started := make(chan struct{}, 1)
	cancelled := make(chan struct{}, 1)
	_, err = s.Every("slow", 10*time.Millisecond, func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		select {
		case cancelled <- struct{}{}:
		default:
		}
		return ctx.Err()
	})
	require.NoError(t, err)

	s.Start()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("task never started")
	}
	require.NoError(t, s.Stop())
	select {
	case <-cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("task context not cancelled")
	}
}
