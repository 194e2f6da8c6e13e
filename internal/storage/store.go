// Package storage is the key-value persistence boundary: JSON blobs addressed
// by string keys such as "assessments", "courses" or "units".
package storage

import (
	"context"
	"encoding/json"
	"log/slog"
)

// KeyAssessments holds the catalog definitions.
const KeyAssessments = "assessments"

// EmptyList is returned for keys that were never saved or hold corrupt data.
var EmptyList = json.RawMessage("[]")

type BlobStore interface {
	// Load returns the stored JSON, or EmptyList when the key is missing or
	// the stored bytes do not parse. Errors are reserved for I/O failures.
	Load(ctx context.Context, key string) (json.RawMessage, error)
	Save(ctx context.Context, key string, value json.RawMessage) error
	Close() error
}

// LoadInto decodes the blob at key into dest, falling back to the empty
// default when decoding fails.
func LoadInto(ctx context.Context, store BlobStore, key string, dest interface{}, logger *slog.Logger) error {
	raw, err := store.Load(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn("Stored blob does not match expected shape, using empty default",
			"key", key,
			"error", err)
		return json.Unmarshal(EmptyList, dest)
	}
	return nil
}

// SaveFrom encodes value and stores it under key.
func SaveFrom(ctx context.Context, store BlobStore, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.Save(ctx, key, raw)
}

func sanitize(raw []byte, key string, logger *slog.Logger) json.RawMessage {
	if len(raw) == 0 {
		return EmptyList
	}
	if !json.Valid(raw) {
		logger.Warn("Stored blob is not valid JSON, using empty default", "key", key)
		return EmptyList
	}
	return json.RawMessage(raw)
}
