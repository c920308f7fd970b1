package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pders01/crossover/internal/config"
	"github.com/pders01/crossover/internal/debuglog"
)

// Layered is an in-memory cache in front of an optional disk Store.
type Layered struct {
	mem  *gocache.Cache
	disk *Store
}

// NewLayered wraps disk (may be nil) with a memory layer holding entries
// for memTTL.
func NewLayered(memTTL time.Duration, disk *Store) *Layered {
	if memTTL <= 0 {
		memTTL = gocache.NoExpiration
	}
	return &Layered{
		mem:  gocache.New(memTTL, 2*memTTL),
		disk: disk,
	}
}

// Open builds the response cache described by cfg. It returns nil when the
// cache is disabled. A disk store that cannot be opened (usually another
// instance holding the lock) degrades to memory only.
func Open(cfg config.CacheConfig) *Layered {
	if !cfg.Enabled {
		return nil
	}

	var disk *Store
	if cfg.Path != "" {
		s, err := NewStore(cfg.Path, cfg.TTL)
		if err != nil {
			debuglog.Warnf("response cache on disk unavailable, using memory only: %v", err)
		} else {
			disk = s
			if n, err := s.Prune(); err != nil {
				debuglog.Warnf("pruning response cache: %v", err)
			} else if n > 0 {
				debuglog.Debugf("pruned %d expired responses", n)
			}
		}
	}
	return NewLayered(cfg.MemoryTTL, disk)
}

func (l *Layered) Get(key string) ([]byte, bool) {
	if v, ok := l.mem.Get(key); ok {
		return v.([]byte), true
	}
	if l.disk == nil {
		return nil, false
	}
	body, ok := l.disk.Get(key)
	if ok {
		l.mem.SetDefault(key, body)
	}
	return body, ok
}

func (l *Layered) Set(key string, body []byte) error {
	l.mem.SetDefault(key, body)
	if l.disk == nil {
		return nil
	}
	return l.disk.Set(key, body)
}

// Close releases the disk store, if any.
func (l *Layered) Close() error {
	if l.disk == nil {
		return nil
	}
	return l.disk.Close()
}
