package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pders01/crossover/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayered_MemoryOnly(t *testing.T) {
	l := NewLayered(time.Minute, nil)

	_, ok := l.Get("k")
	assert.False(t, ok)

	require.NoError(t, l.Set("k", []byte(`[]`)))
	got, ok := l.Get("k")
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), got)
	assert.NoError(t, l.Close())
}

func TestLayered_PromotesDiskHits(t *testing.T) {
	disk, cleanup := setupTestStore(t, time.Hour)
	defer cleanup()

	require.NoError(t, disk.Set("k", []byte(`[{"id":1}]`)))

	l := NewLayered(time.Minute, disk)
	got, ok := l.Get("k")
	require.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, string(got))

	_, inMem := l.mem.Get("k")
	assert.True(t, inMem, "disk hit should be promoted to memory")
}

func TestLayered_WritesThrough(t *testing.T) {
	disk, cleanup := setupTestStore(t, time.Hour)
	defer cleanup()

	l := NewLayered(time.Minute, disk)
	require.NoError(t, l.Set("k", []byte(`[2]`)))

	got, ok := disk.Get("k")
	require.True(t, ok)
	assert.Equal(t, `[2]`, string(got))
}

func TestOpen(t *testing.T) {
	assert.Nil(t, Open(config.CacheConfig{Enabled: false}))

	cfg := config.CacheConfig{
		Enabled:   true,
		Path:      filepath.Join(t.TempDir(), "cache.db"),
		TTL:       time.Hour,
		MemoryTTL: time.Minute,
	}
	l := Open(cfg)
	require.NotNil(t, l)
	require.NotNil(t, l.disk)
	defer l.Close()

	require.NoError(t, l.Set("k", []byte(`[]`)))
	_, ok := l.Get("k")
	assert.True(t, ok)
}
