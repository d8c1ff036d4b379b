// Package storage persists digests and permission grants in a datastore file.
package storage

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/keshon/datastore"

	"github.com/keshon/agorabot/internal/digest"
)

const (
	digestPrefix = "digest:"
	grantsPrefix = "grants:"
)

// Storage is safe for concurrent use.
type Storage struct {
	mu sync.Mutex
	ds *datastore.DataStore
}

// New opens or creates the datastore at filePath.
func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, fmt.Errorf("open datastore: %w", err)
	}
	return &Storage{ds: ds}, nil
}

// Close flushes and closes the datastore.
func (s *Storage) Close() error {
	return s.ds.Close()
}

// load decodes the value at key into out. Values read back from the file are
// generic JSON, so they are round-tripped through encoding/json.
func (s *Storage) load(key string, out any) (bool, error) {
	data, exists := s.ds.Get(key)
	if !exists {
		return false, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return false, fmt.Errorf("error marshalling %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("error unmarshalling %s: %w", key, err)
	}
	return true, nil
}

// DigestMessages returns the digest of guildID.
func (s *Storage) DigestMessages(guildID string) ([]digest.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var msgs []digest.Message
	if _, err := s.load(digestPrefix+guildID, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// AddToDigest adds msgs to the digest of guildID, replacing messages with
// the same ID.
func (s *Storage) AddToDigest(guildID string, msgs ...digest.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current []digest.Message
	if _, err := s.load(digestPrefix+guildID, &current); err != nil {
		return err
	}
	for _, m := range msgs {
		i := slices.IndexFunc(current, func(c digest.Message) bool { return c.ID == m.ID })
		if i >= 0 {
			current[i] = m
		} else {
			current = append(current, m)
		}
	}
	s.ds.Add(digestPrefix+guildID, current)
	return nil
}

// ClearDigest empties the digest of guildID.
func (s *Storage) ClearDigest(guildID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ds.Delete(digestPrefix + guildID)
	return nil
}

// Grants returns the permission paths granted to userID, sorted.
func (s *Storage) Grants(userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var grants []string
	if _, err := s.load(grantsPrefix+userID, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}

// Grant adds path to userID's grants.
func (s *Storage) Grant(userID, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var grants []string
	if _, err := s.load(grantsPrefix+userID, &grants); err != nil {
		return err
	}
	if slices.Contains(grants, path) {
		return nil
	}
	grants = append(grants, path)
	slices.Sort(grants)
	s.ds.Add(grantsPrefix+userID, grants)
	return nil
}

// Revoke removes path from userID's grants.
func (s *Storage) Revoke(userID, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var grants []string
	if _, err := s.load(grantsPrefix+userID, &grants); err != nil {
		return err
	}
	grants = slices.DeleteFunc(grants, func(g string) bool { return g == path })
	if len(grants) == 0 {
		s.ds.Delete(grantsPrefix + userID)
		return nil
	}
	s.ds.Add(grantsPrefix+userID, grants)
	return nil
}
