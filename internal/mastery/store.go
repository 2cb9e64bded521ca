// Package mastery implements the bounded record store shared by the review
// scheduler and the exercise tracker.
package mastery

import (
	"encoding/json"
	"sort"

	"github.com/example/vocabkit/internal/logger"
	"github.com/example/vocabkit/internal/storage"
	"github.com/example/vocabkit/pkg/models"
)

// StorageKey is the well-known key the whole collection is stored under.
const StorageKey = "vocabulary_mastery"

// DefaultCapacity bounds how many records the store will persist.
const DefaultCapacity = 100

// Store persists the full MasteryRecord collection as one JSON blob behind a
// KeyValue backend. Every save is a full rewrite of the blob; the store
// assumes a single writer per storage key.
type Store struct {
	kv       storage.KeyValue
	key      string
	capacity int
}

// New creates a store with the default 100-record capacity.
func New(kv storage.KeyValue) *Store {
	return NewWithCapacity(kv, DefaultCapacity)
}

// NewWithCapacity creates a store with an explicit capacity.
func NewWithCapacity(kv storage.KeyValue, capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{kv: kv, key: StorageKey, capacity: capacity}
}

// GetAll returns the persisted collection. Read and parse failures are
// swallowed and logged: the caller sees an empty collection, never an error.
func (s *Store) GetAll() []models.MasteryRecord {
	raw, err := s.kv.Get(s.key)
	if err != nil {
		logger.Warn("mastery store read failed, treating as empty", "key", s.key, "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var records []models.MasteryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		logger.Warn("mastery store blob is corrupt, treating as empty", "key", s.key, "error", err)
		return nil
	}
	return records
}

// SaveAll persists the collection, keeping only the most recently touched
// records once the capacity is exceeded. The least recently touched ones
// beyond the cap are dropped unconditionally; the returned count is how many
// were evicted, so callers can observe the loss.
func (s *Store) SaveAll(records []models.MasteryRecord) int {
	sorted := make([]models.MasteryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastReviewed.After(sorted[j].LastReviewed)
	})

	evicted := 0
	if len(sorted) > s.capacity {
		evicted = len(sorted) - s.capacity
		sorted = sorted[:s.capacity]
		logger.Warn("mastery store over capacity, evicting oldest records",
			"capacity", s.capacity, "evicted", evicted)
	}

	raw, err := json.Marshal(sorted)
	if err != nil {
		logger.Error("failed to encode mastery records", "error", err)
		return evicted
	}
	if err := s.kv.Set(s.key, raw); err != nil {
		logger.Error("failed to persist mastery records", "key", s.key, "error", err)
	}
	return evicted
}

// GetByID returns the record with the given id, if present.
func (s *Store) GetByID(id string) (*models.MasteryRecord, bool) {
	for _, record := range s.GetAll() {
		if record.ID == id {
			found := record
			return &found, true
		}
	}
	return nil, false
}

// Upsert replaces the record with the same ID, or appends it, then persists
// the collection. It returns the number of records evicted by the save.
func (s *Store) Upsert(record models.MasteryRecord) int {
	records := s.GetAll()
	replaced := false
	for i := range records {
		if records[i].ID == record.ID {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}
	return s.SaveAll(records)
}
