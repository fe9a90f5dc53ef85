package retry

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, BackoffExponential, p.Mode)
	assert.Equal(t, 200*time.Millisecond, p.Initial)
	assert.Equal(t, 5*time.Second, p.Max)
	assert.Equal(t, 2, p.MaxRetries)
	require.NoError(t, p.Validate())
}

func TestNewPolicyOverrides(t *testing.T) {
	p := NewPolicy(BackoffFixed, 5*time.Second, 2*time.Second, 5)
	assert.Equal(t, 2*time.Second, p.Initial, "initial is clamped to max")
	assert.Equal(t, 2*time.Second, p.Max)
	assert.Equal(t, BackoffFixed, p.Mode)
	assert.Equal(t, 5, p.MaxRetries)

	p = NewPolicy("bogus", 0, 0, -1)
	assert.Equal(t, DefaultPolicy(), p)
}

func TestDelayModes(t *testing.T) {
	tests := []struct {
		mode BackoffMode
		want []time.Duration
	}{
		{BackoffFixed, []time.Duration{100, 100, 100, 100}},
		{BackoffLinear, []time.Duration{100, 200, 300, 350}},
		{BackoffExponential, []time.Duration{100, 200, 350, 350}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			p := NewPolicy(tt.mode, 100*time.Millisecond, 350*time.Millisecond, 4)
			assert.Equal(t, time.Duration(0), p.Delay(0))
			for i, want := range tt.want {
				assert.Equal(t, want*time.Millisecond, p.Delay(i+1), "retry %d", i+1)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	assert.Error(t, Policy{Initial: 0, Max: time.Second}.Validate())
	assert.Error(t, Policy{Initial: time.Second, Max: 0}.Validate())
	assert.Error(t, Policy{Initial: time.Second, Max: time.Second, MaxRetries: -1}.Validate())
}

func TestDo(t *testing.T) {
	p := NewPolicy(BackoffFixed, time.Millisecond, time.Millisecond, 2)
	transient := errors.NetworkError("connection reset").Build()

	t.Run("retries transient errors until success", func(t *testing.T) {
		calls := 0
		err := p.Do(context.Background(), func(context.Context) error {
			calls++
			if calls < 3 {
				return transient
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := p.Do(context.Background(), func(context.Context) error {
			calls++
			return transient
		})
		require.ErrorIs(t, err, transient)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		calls := 0
		err := p.Do(context.Background(), func(context.Context) error {
			calls++
			return errors.ValidationError("bad request").Build()
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("does not retry plain errors", func(t *testing.T) {
		calls := 0
		_ = p.Do(context.Background(), func(context.Context) error {
			calls++
			return stderrors.New("boom")
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when context is done", func(t *testing.T) {
		slow := NewPolicy(BackoffFixed, time.Hour, time.Hour, 5)
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := slow.Do(ctx, func(context.Context) error {
			calls++
			cancel()
			return transient
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}
