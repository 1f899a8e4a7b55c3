package store

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/ndaedxo/Social-Media-Platform/internal/substrate"
	"github.com/ndaedxo/Social-Media-Platform/pkg/logger"
)

// writeJSON serializes v into its slot. A failure is reported, never raised
// past the store: the caller publishes the in-memory snapshot regardless.
func writeJSON(ctx context.Context, sub substrate.Substrate, key string, v any) *PersistenceError {
	data, err := json.Marshal(v)
	if err != nil {
		return &PersistenceError{Key: key, Err: err}
	}
	if err := sub.Set(ctx, key, data); err != nil {
		return &PersistenceError{Key: key, Err: err}
	}
	return nil
}

// loadJSON reads a slot into dst. Absent keys and corrupt payloads both leave
// dst untouched and report false: a store always starts from something
// readable, even over a damaged substrate.
func loadJSON(ctx context.Context, sub substrate.Substrate, key string, dst any) bool {
	data, err := sub.Get(ctx, key)
	if errors.Is(err, substrate.ErrNotFound) {
		return false
	}
	if err != nil {
		logger.Warn("loading persisted state failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.Warn("persisted state is corrupt, starting empty", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}
