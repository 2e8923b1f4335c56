package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/magicboards/internal/magic"
)

// Storage keys
const (
	prefixConstants = "constants/"
)

// ErrNotFound is returned when no constant set is stored under a name.
var ErrNotFound = errors.New("constant set not found")

// Record is a stored constant set with the details of the run that made it.
type Record struct {
	Name     string            `json:"name"`
	Set      magic.ConstantSet `json:"set"`
	Attempts int               `json:"attempts,omitempty"`
	SavedAt  time.Time         `json:"saved_at"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens or creates a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open storage %s: %w", dir, err)
	}

	return &Storage{db: db}, nil
}

// OpenDefault opens the database in the platform data directory.
func OpenDefault() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func constantsKey(name string) []byte {
	return []byte(prefixConstants + name)
}

// SaveConstants stores rec under rec.Name, replacing any earlier set.
func (s *Storage) SaveConstants(rec Record) error {
	if rec.Name == "" {
		return errors.New("save constants: empty name")
	}
	if rec.SavedAt.IsZero() {
		rec.SavedAt = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(constantsKey(rec.Name), data)
	})
}

// LoadConstants returns the record stored under name or ErrNotFound.
func (s *Storage) LoadConstants(name string) (*Record, error) {
	var rec Record

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(constantsKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// ListConstants returns the names of every stored set in key order.
func (s *Storage) ListConstants() ([]string, error) {
	var names []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefixConstants)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			names = append(names, string(key[len(prefixConstants):]))
		}
		return nil
	})

	return names, err
}

// DeleteConstants removes the set stored under name. Deleting a missing
// name is not an error.
func (s *Storage) DeleteConstants(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(constantsKey(name))
	})
}

// LoadTables rebuilds magic tables from the set stored under name.
func (s *Storage) LoadTables(name string) (*magic.Tables, error) {
	rec, err := s.LoadConstants(name)
	if err != nil {
		return nil, err
	}
	return magic.FromConstants(rec.Set)
}
