package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryStoreRoundTrip(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	_, err := s.GetFrameworkID(ctx, "spark")
	assert.IsType(t, &ErrFrameworkNotFound{}, err)

	assert.NoError(t, s.SetMesosFrameworkID(ctx, "spark", "framework-1"))
	id, err := s.GetFrameworkID(ctx, "spark")
	assert.NoError(t, err)
	assert.Equal(t, "framework-1", id)

	// Overwrites keep the latest id.
	assert.NoError(t, s.SetMesosFrameworkID(ctx, "spark", "framework-2"))
	id, err = s.GetFrameworkID(ctx, "spark")
	assert.NoError(t, err)
	assert.Equal(t, "framework-2", id)
}
