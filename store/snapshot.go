package store

import (
	json "github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/moodtrack/internal/models"
)

// Snapshot fields are stored one per key under a common prefix.
const (
	fieldSession    = "session"
	fieldPrompt     = "prompt"
	fieldNextPrompt = "next_prompt_at"
	fieldResponses  = "responses"
	fieldPre        = "pre_answers"
	fieldPost       = "post_answers"
	fieldPending    = "pending_payload"
)

// Key namespaces a snapshot field under prefix.
func Key(prefix, field string) string {
	return prefix + "/" + field
}

// SaveSnapshot overwrites the stored snapshot in a single transaction. Nil
// optional parts are removed rather than stored as null.
func (c *Client) SaveSnapshot(prefix string, snap *models.Snapshot) error {
	fields := []struct {
		value any
		name  string
		isNil bool
	}{
		{name: fieldSession, value: snap.Session},
		{name: fieldPrompt, value: snap.Prompt, isNil: snap.Prompt == nil},
		{name: fieldNextPrompt, value: snap.NextPromptAt, isNil: snap.NextPromptAt == nil},
		{name: fieldResponses, value: snap.Responses},
		{name: fieldPre, value: snap.PreAnswers},
		{name: fieldPost, value: snap.PostAnswers},
		{name: fieldPending, value: snap.Pending, isNil: snap.Pending == nil},
	}

	encoded := make(map[string][]byte, len(fields))

	for _, f := range fields {
		if f.isNil {
			continue
		}

		b, err := json.Marshal(f.value)
		if err != nil {
			return errEncode.Fmt(f.name).Wrap(err)
		}

		encoded[f.name] = b
	}

	return c.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))

		for _, f := range fields {
			key := []byte(Key(prefix, f.name))

			b, ok := encoded[f.name]
			if !ok {
				if err := bucket.Delete(key); err != nil {
					return err
				}

				continue
			}

			if err := bucket.Put(key, b); err != nil {
				return err
			}
		}

		return nil
	})
}

// LoadSnapshot reads the snapshot stored under prefix. It returns nil when no
// session has been persisted.
func (c *Client) LoadSnapshot(prefix string) (*models.Snapshot, error) {
	var snap models.Snapshot

	found, err := c.Load(Key(prefix, fieldSession), &snap.Session)
	if err != nil || !found {
		return nil, err
	}

	targets := []struct {
		value any
		name  string
	}{
		{name: fieldPrompt, value: &snap.Prompt},
		{name: fieldNextPrompt, value: &snap.NextPromptAt},
		{name: fieldResponses, value: &snap.Responses},
		{name: fieldPre, value: &snap.PreAnswers},
		{name: fieldPost, value: &snap.PostAnswers},
		{name: fieldPending, value: &snap.Pending},
	}

	for _, t := range targets {
		if _, err := c.Load(Key(prefix, t.name), t.value); err != nil {
			return nil, err
		}
	}

	return &snap, nil
}
