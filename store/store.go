// Package store persists moodtrack session state to a BoltDB file
package store

import (
	"bytes"
	"errors"
	"io/fs"
	"time"

	json "github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/ayoisaiah/moodtrack/internal/apperr"
)

const bucketName = "moodtrack"

var (
	errAlreadyRunning = &apperr.Error{
		Message: "is moodtrack already running? Only one instance can be active at a time",
	}

	errEncode = &apperr.Error{
		Message: "unable to encode %s",
	}

	errDecode = &apperr.Error{
		Message: "unable to decode %s",
	}
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// Save overwrites the value stored at key with the JSON encoding of v.
func (c *Client) Save(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errEncode.Fmt(key).Wrap(err)
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), b)
	})
}

// Load decodes the value stored at key into v. v is left untouched and found
// is false when the key does not exist, so callers can pre-fill v with a
// default.
func (c *Client) Load(key string, v any) (found bool, err error) {
	err = c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName)).Get([]byte(key))
		if b == nil {
			return nil
		}

		found = true

		if err := json.Unmarshal(b, v); err != nil {
			return errDecode.Fmt(key).Wrap(err)
		}

		return nil
	})

	return found, err
}

// ClearAll deletes every key that begins with prefix.
func (c *Client) ClearAll(prefix string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return deletePrefix(tx, prefix)
	})
}

func deletePrefix(tx *bolt.Tx, prefix string) error {
	bucket := tx.Bucket([]byte(bucketName))
	p := []byte(prefix)

	var keys [][]byte

	cur := bucket.Cursor()
	for k, _ := cur.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = cur.Next() {
		keys = append(keys, bytes.Clone(k))
	}

	for _, k := range keys {
		if err := bucket.Delete(k); err != nil {
			return err
		}
	}

	return nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, berrors.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
