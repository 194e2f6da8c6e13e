package storage

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	keyCourses = "courses"
	keyUnits   = "units"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryStore_LoadDefaults(t *testing.T) {
	store := NewMemoryStore(testLogger())
	ctx := context.Background()

	raw, err := store.Load(ctx, keyCourses)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))

	require.NoError(t, store.Save(ctx, keyUnits, json.RawMessage("{broken")))
	raw, err = store.Load(ctx, keyUnits)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}

func TestMemoryStore_SaveIsolatesCaller(t *testing.T) {
	store := NewMemoryStore(testLogger())
	ctx := context.Background()

	value := json.RawMessage(`[{"id":"c1"}]`)
	require.NoError(t, store.Save(ctx, keyCourses, value))
	value[3] = 'X'

	raw, err := store.Load(ctx, keyCourses)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"c1"}]`, string(raw))
}

func TestLoadInto_ShapeMismatch(t *testing.T) {
	store := NewMemoryStore(testLogger())
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, keyCourses, json.RawMessage(`{"id":"c1"}`)))

	var dest []map[string]string
	require.NoError(t, LoadInto(ctx, store, keyCourses, &dest, testLogger()))
	assert.Empty(t, dest)
}

func TestSaveFrom_RoundTrip(t *testing.T) {
	store := NewMemoryStore(testLogger())
	ctx := context.Background()

	type unit struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, SaveFrom(ctx, store, keyUnits, []unit{{ID: "u1", Title: "Intro"}}))

	var got []unit
	require.NoError(t, LoadInto(ctx, store, keyUnits, &got, testLogger()))
	assert.Equal(t, []unit{{ID: "u1", Title: "Intro"}}, got)
}
