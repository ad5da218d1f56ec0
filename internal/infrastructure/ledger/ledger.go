package ledger

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store records the last reminder delivery per user in BoltDB, so re-running
// the reminder job within the same day does not double-send.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "reminders"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// LastSent returns the recorded delivery time for a user. The zero time means
// no reminder has ever been sent.
func (s *Store) LastSent(userID string) (time.Time, error) {
	if s == nil || s.db == nil {
		return time.Time{}, bolt.ErrDatabaseNotOpen
	}
	var last time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get([]byte(userID))
		if len(raw) == 0 {
			return nil
		}
		parsed, err := time.Parse(time.RFC3339, string(raw))
		if err != nil {
			// unreadable entry, treat as never sent
			return nil
		}
		last = parsed
		return nil
	})
	return last, err
}

// MarkSent records a delivery for the user.
func (s *Store) MarkSent(userID string, at time.Time) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(userID), []byte(at.Format(time.RFC3339)))
	})
}

// Size returns the number of tracked users, for health reporting.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Cleanup removes entries older than the provided timestamp.
func (s *Store) Cleanup(olderThan time.Time) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			sent, err := time.Parse(time.RFC3339, string(v))
			if err != nil || sent.Before(olderThan) {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
