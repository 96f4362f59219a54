package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/kbukum/fluxkit/logger"
)

func memoryConfig() Config {
	cfg := Config{
		Enabled:  true,
		DSN:      fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		LogLevel: "silent",
	}
	cfg.ApplyDefaults()
	return cfg
}

func openMemory(t *testing.T) *DB {
	t.Helper()
	db, err := New(context.Background(), memoryConfig(), logger.Nop())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
