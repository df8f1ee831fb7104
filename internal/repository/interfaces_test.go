package repository

import (
	"context"
	"testing"

	"shortlinks/internal/repository/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorage_EmptyDSNUsesMemory(t *testing.T) {
	storage, err := NewStorage(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	assert.IsType(t, &inmemory.InmemoryStorage{}, storage)
	assert.NoError(t, storage.Ping(context.Background()))
}
