package kvstore

import (
	"context"
	"fmt"

	"taskprog/internal/config"
	"taskprog/internal/draft"
)

// Backend is a draft store that holds resources.
type Backend interface {
	draft.KV
	Close() error
}

var (
	_ Backend = (*Memory)(nil)
	_ Backend = (*File)(nil)
	_ Backend = (*SQLite)(nil)
	_ Backend = (*Redis)(nil)
)

// Open builds the backend named in cfg.
func Open(ctx context.Context, cfg config.Drafts) (Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendFile:
		return NewFile(cfg.Path), nil
	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.Path)
	case config.BackendRedis:
		return OpenRedis(ctx, cfg.RedisURL, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown drafts backend %q", cfg.Backend)
	}
}
