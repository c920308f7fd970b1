package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"
)

var responsesBucket = []byte("responses")

type entry struct {
	StoredAt time.Time       `json:"stored_at"`
	Body     json.RawMessage `json:"body"`
}

// Store persists raw response bodies in a bbolt file with a fixed TTL.
type Store struct {
	db  *bolt.DB
	ttl time.Duration
	now func() time.Time
}

func NewStore(dbPath string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(responsesBucket)
		return createErr
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db, ttl: ttl, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the body stored under key unless it has expired.
func (s *Store) Get(key string) ([]byte, bool) {
	var body []byte
	_ = s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(responsesBucket).Get([]byte(key))
		if data == nil {
			return nil
		}
		var e entry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil
		}
		if s.expired(e) {
			return nil
		}
		body = append([]byte(nil), e.Body...)
		return nil
	})
	return body, body != nil
}

// Set stores a JSON body under key.
func (s *Store) Set(key string, body []byte) error {
	data, err := json.Marshal(entry{StoredAt: s.now(), Body: body})
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(responsesBucket).Put([]byte(key), data)
	})
}

// Prune deletes expired and unreadable entries and reports how many went.
func (s *Store) Prune() (int, error) {
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(responsesBucket)
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var e entry
			if err := json.Unmarshal(v, &e); err != nil || s.expired(e) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	return removed, err
}

func (s *Store) expired(e entry) bool {
	return s.ttl > 0 && s.now().Sub(e.StoredAt) > s.ttl
}
