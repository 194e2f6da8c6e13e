package catalog

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/storage"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
)

func newTestCatalog(t *testing.T) (*Catalog, *storage.MemoryStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewMemoryStore(logger)
	return New(store, validator.New(), logger), store
}

func TestSamples_AreValid(t *testing.T) {
	v := validator.New()
	kinds := map[models.AssessmentKind]bool{}
	for _, a := range Samples() {
		a := a
		assert.NoError(t, v.Validate(&a), a.Key)
		kinds[a.Kind] = true
	}
	assert.Len(t, kinds, len(models.AllKinds), "every kind has a sample")
}

func TestCatalog_SeedsEmptyStore(t *testing.T) {
	c, store := newTestCatalog(t)
	ctx := context.Background()

	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(Samples()))

	raw, err := store.Load(ctx, storage.KeyAssessments)
	require.NoError(t, err)
	var stored []models.Assessment
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Len(t, stored, len(Samples()))
}

func TestCatalog_CorruptStoreFallsBackToSamples(t *testing.T) {
	c, store := newTestCatalog(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, storage.KeyAssessments, json.RawMessage(`{not json`)))

	a, err := c.Get(ctx, SampleDropdown)
	require.NoError(t, err)
	assert.Len(t, a.Dropdown, 5)
}

func TestCatalog_PutGetDelete(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	custom := &models.Assessment{
		Key:   "custom-numeric",
		Title: "Custom",
		Kind:  models.KindNumericCalculation,
		Numeric: []models.NumericQuestion{
			{ID: "n1", Text: "2+2", CorrectAnswer: 4},
		},
	}
	require.NoError(t, c.Put(ctx, custom))

	got, err := c.Get(ctx, "custom-numeric")
	require.NoError(t, err)
	assert.Equal(t, "Custom", got.Title)

	require.NoError(t, c.Delete(ctx, "custom-numeric"))
	_, err = c.Get(ctx, "custom-numeric")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, c.Delete(ctx, "custom-numeric"), ErrNotFound)
}

func TestCatalog_PutRejectsInvalid(t *testing.T) {
	c, _ := newTestCatalog(t)

	err := c.Put(context.Background(), &models.Assessment{Key: "bad", Title: "Bad", Kind: models.KindEssay})
	require.Error(t, err)
	_, ok := err.(validator.ValidationErrors)
	assert.True(t, ok)
}
