package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/keshon/datastore"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Storage wraps the JSON file datastore behind typed accessors for guild
// settings, AFK records, and short links.
type Storage struct {
	ds *datastore.DataStore
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// decode re-marshals a stored value into out. The datastore hands back typed
// values while the process that wrote them is alive, but generic maps after a
// reload from disk; a JSON round-trip handles both.
func decode(data any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshalling stored data: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("error unmarshalling stored data: %w", err)
	}
	return nil
}
