package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopCache_AlwaysMisses(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "result:s-1", map[string]int{"score": 100}, time.Minute))

	var dest map[string]int
	assert.ErrorIs(t, c.Get(ctx, "result:s-1", &dest), ErrCacheMiss)
	assert.Nil(t, dest)
	assert.NoError(t, c.Delete(ctx, "result:s-1"))
	assert.NoError(t, c.DeletePattern(ctx, "result:*"))
}

func TestNewLogger(t *testing.T) {
	for _, production := range []bool{true, false} {
		logger, err := NewLogger(production)
		assert.NoError(t, err)
		assert.NotNil(t, logger)
	}
}
