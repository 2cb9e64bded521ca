// Package tracker records right/wrong outcomes from exercises outside the
// scheduled review session (quizzes, comprehension lookups, conversation
// corrections).
package tracker

import (
	"time"

	"github.com/example/vocabkit/internal/mastery"
	"github.com/example/vocabkit/pkg/models"
)

// Tracker maintains the accuracy channel of each mastery record. It never
// touches the SM-2 scheduling fields; those belong to the review session.
type Tracker struct {
	store *mastery.Store
	now   func() time.Time
}

// New creates a tracker writing into store.
func New(store *mastery.Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// TrackWord records one right/wrong outcome for a (word, translation) pair,
// creating the record on first encounter. Each call is a distinct review
// event; repeated identical calls keep incrementing the counters. New
// records start with fresh SM-2 state, which makes them immediately due for
// a scheduled review regardless of their quiz accuracy.
func (t *Tracker) TrackWord(word, translation, category, topic string, isCorrect bool, context string) {
	id := models.RecordID(word, translation)
	records := t.store.GetAll()
	now := t.now()

	found := false
	for i := range records {
		if records[i].ID != id {
			continue
		}
		record := &records[i]
		record.LastReviewed = now
		record.TimesReviewed++
		if isCorrect {
			record.TimesCorrect++
		}
		record.RecomputeMasteryLevel()
		found = true
		break
	}

	if !found {
		record := models.MasteryRecord{
			ID:            id,
			Word:          word,
			Translation:   translation,
			Category:      category,
			Topic:         topic,
			Context:       context,
			LastReviewed:  now,
			TimesReviewed: 1,
		}
		if isCorrect {
			record.TimesCorrect = 1
		}
		record.RecomputeMasteryLevel()
		records = append(records, record)
	}

	t.store.SaveAll(records)
}
