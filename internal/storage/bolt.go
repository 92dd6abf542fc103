package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"gitlab.com/mthiha/goaltrack/internal/logger"
)

var bucketName = []byte("records")

// BoltStore persists records in a single-bucket bbolt file. Writes are
// last-writer-wins; there is no cross-process coordination beyond bbolt's
// file lock.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database file at path. When the file
// cannot be opened the returned store is still usable: every read reports
// absent and every write reports failure, mirroring a storage medium that
// is simply not there.
func NewBoltStore(path string) *BoltStore {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		logger.Log.Warn().Err(err).Str("path", path).Msg("Storage directory unavailable")
		return &BoltStore{}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		logger.Log.Warn().Err(err).Str("path", path).Msg("Storage medium unavailable")
		return &BoltStore{}
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		logger.Log.Warn().Err(err).Str("path", path).Msg("Failed to initialize storage bucket")
		_ = db.Close()
		return &BoltStore{}
	}

	return &BoltStore{db: db}
}

// Close releases the underlying database file.
func (s *BoltStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get decodes the stored JSON value for key into out.
func (s *BoltStore) Get(key string, out any) (bool, error) {
	if s.db == nil {
		return false, nil
	}

	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get([]byte(key)); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	if raw == nil {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode key %q: %w", key, err)
	}
	return true, nil
}

// Set serializes value as JSON and writes it under key.
func (s *BoltStore) Set(key string, value any) bool {
	if s.db == nil {
		return false
	}

	raw, err := json.Marshal(value)
	if err != nil {
		logger.Log.Error().Err(err).Str("key", key).Msg("Failed to encode value")
		return false
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), raw)
	})
	if err != nil {
		logger.Log.Error().Err(err).Str("key", key).Msg("Failed to write value")
		return false
	}
	return true
}

// Remove deletes the record under key. Removing a missing key succeeds.
func (s *BoltStore) Remove(key string) bool {
	if s.db == nil {
		return false
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		logger.Log.Error().Err(err).Str("key", key).Msg("Failed to remove value")
		return false
	}
	return true
}
