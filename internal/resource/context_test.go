package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContextManagerShutdown(t *testing.T) {
	cm := NewContextManager()
	assert.True(t, cm.IsActive())

	cm.Shutdown()
	assert.False(t, cm.IsActive())
	assert.ErrorIs(t, cm.GetContext().Err(), context.Canceled)

	// second call is a no-op
	cm.Shutdown()
}

func TestContextManagerFromParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	cm := NewContextManagerFrom(parent)
	defer cm.Shutdown()

	assert.True(t, cm.IsActive())
	cancel()
	assert.False(t, cm.IsActive())
}

func TestRunWithTimeout(t *testing.T) {
	cm := NewContextManagerFrom(context.Background())
	defer cm.Shutdown()

	err := cm.RunWithTimeout(20*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = cm.RunWithTimeout(0, func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.False(t, hasDeadline)
		return nil
	})
	assert.NoError(t, err)
}
