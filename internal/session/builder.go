// Package session assembles practice rounds from the mastery store and
// applies review outcomes back into it.
package session

import (
	"errors"
	"sort"
	"time"

	"github.com/example/vocabkit/internal/mastery"
	"github.com/example/vocabkit/internal/sm2"
	"github.com/example/vocabkit/pkg/models"
)

// DefaultSessionSize is used when neither the caller nor the configuration
// supplies a session size.
const DefaultSessionSize = 10

// ErrNotFound is returned by UpdateAfterReview when no record matches the id.
var ErrNotFound = errors.New("mastery record not found")

// Item is the projection of a record consumed by the exercise UI.
type Item struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Context     string `json:"context,omitempty"`
}

// Stats summarizes the collection for the review screen.
type Stats struct {
	TotalWords        int
	DueForReview      int
	AverageEaseFactor float64
	NextReviewDate    *time.Time
}

// Builder composes the mastery store and the SM-2 engine into the review
// session workflow.
type Builder struct {
	store       *mastery.Store
	engine      *sm2.Engine
	sessionSize int
}

// New creates a builder with the default session size.
func New(store *mastery.Store, engine *sm2.Engine) *Builder {
	return NewWithSize(store, engine, DefaultSessionSize)
}

// NewWithSize creates a builder whose fallback session size comes from
// configuration.
func NewWithSize(store *mastery.Store, engine *sm2.Engine, sessionSize int) *Builder {
	if sessionSize <= 0 {
		sessionSize = DefaultSessionSize
	}
	return &Builder{store: store, engine: engine, sessionSize: sessionSize}
}

// GenerateSession picks count records for one practice round, weakest
// retention first. Due-ness is deliberately ignored: the round always drills
// the words with the lowest ease factor across the whole collection, whether
// or not they are scheduled for today. A count <= 0 falls back to the
// configured session size.
func (b *Builder) GenerateSession(count int) []Item {
	if count <= 0 {
		count = b.sessionSize
	}

	records := b.store.GetAll()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].EffectiveEaseFactor() < records[j].EffectiveEaseFactor()
	})
	if len(records) > count {
		records = records[:count]
	}

	items := make([]Item, 0, len(records))
	for _, record := range records {
		items = append(items, Item{
			Word:        record.Word,
			Translation: record.Translation,
			Context:     record.Context,
		})
	}
	return items
}

// UpdateAfterReview applies a quality score (0-5) to the record with the
// given id and persists the result. It returns ErrNotFound when no record
// matches, so callers can tell an applied update from an ignored one.
func (b *Builder) UpdateAfterReview(id string, quality int) error {
	records := b.store.GetAll()
	for i := range records {
		if records[i].ID == id {
			records[i] = b.engine.CalculateNextReview(records[i], quality)
			b.store.SaveAll(records)
			return nil
		}
	}
	return ErrNotFound
}

// Stats reports aggregate scheduling state across the whole collection. An
// empty store reports the default ease factor.
func (b *Builder) Stats() Stats {
	records := b.store.GetAll()

	stats := Stats{
		TotalWords:        len(records),
		AverageEaseFactor: models.DefaultEaseFactor,
	}
	if len(records) > 0 {
		sum := 0.0
		for _, record := range records {
			sum += record.EffectiveEaseFactor()
		}
		stats.AverageEaseFactor = sum / float64(len(records))
	}

	due := b.engine.WordsDueForReview(records)
	stats.DueForReview = len(due)
	for _, record := range due {
		if record.NextReview == nil {
			continue
		}
		if stats.NextReviewDate == nil || record.NextReview.Before(*stats.NextReviewDate) {
			next := *record.NextReview
			stats.NextReviewDate = &next
		}
	}
	return stats
}
