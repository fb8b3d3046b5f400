package store

import "github.com/ayoisaiah/moodtrack/internal/models"

// DB is the database storage interface.
type DB interface {
	// Save overwrites the value stored at key
	Save(key string, v any) error
	// Load decodes the value stored at key into v and reports whether it
	// existed
	Load(key string, v any) (bool, error)
	// ClearAll removes every key under prefix
	ClearAll(prefix string) error
	// SaveSnapshot persists the whole session aggregate under prefix
	SaveSnapshot(prefix string, snap *models.Snapshot) error
	// LoadSnapshot returns the aggregate stored under prefix, or nil if there
	// is none
	LoadSnapshot(prefix string) (*models.Snapshot, error)
	// Close ends the database connection
	Close() error
}
