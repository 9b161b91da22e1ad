// Package testutil provides testing utilities for Spider
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spidergraph/spider/pkg/driver"
	"github.com/spidergraph/spider/pkg/logger"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// ObserveLogs installs an observing logger as the process logger for the
// duration of the test and returns the captured entries.
func ObserveLogs(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	restore := logger.Replace(zap.New(core))
	t.Cleanup(restore)
	return logs
}

// TestContext creates a test context with a 30-second timeout.
// The caller must call the returned cancel function to avoid leaks.
func TestContext(_ *testing.T) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// WriteFile writes content to name inside a temporary directory owned by
// the test and returns the full path.
func WriteFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// StubDriver records the definition it was built from and whether it was
// closed.
type StubDriver struct {
	mu         sync.Mutex
	name       string
	definition map[string]interface{}
	closed     bool
}

// Name implements driver.Driver.
func (d *StubDriver) Name() string { return d.name }

// Definition returns the definition passed to the factory.
func (d *StubDriver) Definition() map[string]interface{} { return d.definition }

// Close implements driver.Driver.
func (d *StubDriver) Close(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Closed reports whether Close was called.
func (d *StubDriver) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// StubDrivers returns a fresh driver registry with a StubDriver factory
// registered under each name.
func StubDrivers(t *testing.T, names ...string) *driver.Registry {
	t.Helper()
	r := driver.NewRegistry()
	for _, name := range names {
		name := name
		err := r.Register(name, func(def map[string]interface{}) (driver.Driver, error) {
			return &StubDriver{name: name, definition: def}, nil
		})
		if err != nil {
			t.Fatalf("register stub driver %s: %v", name, err)
		}
	}
	return r
}
