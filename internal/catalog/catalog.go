// Package catalog holds assessment definitions, persisted as one JSON list in
// the blob store and seeded with the built-in samples on first use.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/storage"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
)

var ErrNotFound = errors.New("assessment not found")

type Catalog struct {
	mu        sync.RWMutex
	store     storage.BlobStore
	validator *validator.Validator
	logger    *slog.Logger

	loaded bool
	byKey  map[string]*models.Assessment
}

func New(store storage.BlobStore, v *validator.Validator, logger *slog.Logger) *Catalog {
	return &Catalog{
		store:     store,
		validator: v,
		logger:    logger,
		byKey:     make(map[string]*models.Assessment),
	}
}

// ensureLoaded reads the stored list once. An empty store is seeded with the
// samples and written back.
func (c *Catalog) ensureLoaded(ctx context.Context) error {
	if c.loaded {
		return nil
	}

	var list []models.Assessment
	if err := storage.LoadInto(ctx, c.store, storage.KeyAssessments, &list, c.logger); err != nil {
		return fmt.Errorf("failed to load assessments: %w", err)
	}

	if len(list) == 0 {
		c.logger.Info("Seeding assessment catalog with built-in samples")
		list = Samples()
		if err := storage.SaveFrom(ctx, c.store, storage.KeyAssessments, list); err != nil {
			return fmt.Errorf("failed to seed assessments: %w", err)
		}
	}

	for i := range list {
		a := list[i]
		if err := c.validator.Validate(&a); err != nil {
			c.logger.Warn("Skipping invalid stored assessment",
				"assessment_key", a.Key,
				"error", err)
			continue
		}
		c.byKey[a.Key] = &a
	}
	c.loaded = true

	c.logger.Info("Assessment catalog loaded", "count", len(c.byKey))
	return nil
}

// List returns summaries sorted by key.
func (c *Catalog) List(ctx context.Context) ([]models.Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	out := make([]models.Summary, 0, len(c.byKey))
	for _, a := range c.byKey {
		out = append(out, a.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Get returns the definition for key. The returned value is shared and must
// not be modified.
func (c *Catalog) Get(ctx context.Context, key string) (*models.Assessment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	a, ok := c.byKey[key]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

// Put validates and upserts a definition, then writes the whole list back.
// Running sessions keep the definition they were created with.
func (c *Catalog) Put(ctx context.Context, a *models.Assessment) error {
	if err := c.validator.Validate(a); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}

	stored := *a
	prev, existed := c.byKey[a.Key]
	c.byKey[a.Key] = &stored

	if err := c.persistLocked(ctx); err != nil {
		if existed {
			c.byKey[a.Key] = prev
		} else {
			delete(c.byKey, a.Key)
		}
		return err
	}

	c.logger.Info("Assessment saved",
		"assessment_key", a.Key,
		"kind", a.Kind,
		"replaced", existed)
	return nil
}

// Delete removes a definition.
func (c *Catalog) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}

	prev, ok := c.byKey[key]
	if !ok {
		return ErrNotFound
	}
	delete(c.byKey, key)

	if err := c.persistLocked(ctx); err != nil {
		c.byKey[key] = prev
		return err
	}

	c.logger.Info("Assessment deleted", "assessment_key", key)
	return nil
}

func (c *Catalog) persistLocked(ctx context.Context) error {
	keys := make([]string, 0, len(c.byKey))
	for k := range c.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]models.Assessment, 0, len(keys))
	for _, k := range keys {
		list = append(list, *c.byKey[k])
	}
	if err := storage.SaveFrom(ctx, c.store, storage.KeyAssessments, list); err != nil {
		return fmt.Errorf("failed to save assessments: %w", err)
	}
	return nil
}
