package resource

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jeeftor/wordgrid/internal/logging"
)

// ContextManager owns the application-wide context. SIGINT and SIGTERM
// cancel it so in-flight decoding and recognition stop early.
type ContextManager struct {
	rootContext context.Context
	cancelFunc  context.CancelFunc
	stopSignals func()
	mu          sync.RWMutex
}

// NewContextManager creates a new context manager with signal handling
func NewContextManager() *ContextManager {
	return newContextManager(context.Background(), true)
}

// NewContextManagerFrom creates a manager rooted at parent without signal handling
func NewContextManagerFrom(parent context.Context) *ContextManager {
	return newContextManager(parent, false)
}

func newContextManager(parent context.Context, signals bool) *ContextManager {
	rootCtx, cancel := context.WithCancel(parent)

	cm := &ContextManager{
		rootContext: rootCtx,
		cancelFunc:  cancel,
		stopSignals: func() {},
	}

	if signals {
		cm.setupSignalHandling()
	}

	return cm
}

// GetContext returns the root context for operations
func (cm *ContextManager) GetContext() context.Context {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.rootContext
}

// WithTimeout creates a context with timeout
func (cm *ContextManager) WithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(cm.GetContext())
	}
	return context.WithTimeout(cm.GetContext(), timeout)
}

// setupSignalHandling cancels the root context on the first shutdown signal
func (cm *ContextManager) setupSignalHandling() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	cm.stopSignals = func() {
		signal.Stop(sigChan)
		close(done)
	}

	go func() {
		select {
		case sig := <-sigChan:
			logging.Info("Received shutdown signal, cancelling work", "signal", sig.String())
			cm.cancelFunc()
		case <-done:
		}
	}()
}

// Shutdown cancels the root context and stops signal handling. It is safe
// to call more than once.
func (cm *ContextManager) Shutdown() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.cancelFunc()
	if cm.stopSignals != nil {
		cm.stopSignals()
		cm.stopSignals = nil
	}
}

// IsActive returns whether the context manager is still active
func (cm *ContextManager) IsActive() bool {
	select {
	case <-cm.GetContext().Done():
		return false
	default:
		return true
	}
}

// RunWithTimeout executes a function with a timeout context
func (cm *ContextManager) RunWithTimeout(timeout time.Duration, fn func(context.Context) error) error {
	ctx, cancel := cm.WithTimeout(timeout)
	defer cancel()

	return fn(ctx)
}
