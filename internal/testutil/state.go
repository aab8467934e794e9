// Package testutil provides shared test doubles for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"lteman/internal/state"
)

// SetupTestStore creates a migrated state store backed by a temporary file
func SetupTestStore(t *testing.T) *state.Store {
	t.Helper()

	store, err := state.New(&state.Config{
		DSN:             filepath.Join(t.TempDir(), "state.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	if err := store.Migrate(); err != nil {
		t.Fatalf("failed to migrate test store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})
	return store
}
