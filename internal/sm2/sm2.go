// Package sm2 implements the SM-2 derived scheduling math. It is pure
// computation: no storage, no side effects beyond reading the clock.
package sm2

import (
	"math"
	"sort"
	"time"

	"github.com/example/vocabkit/pkg/models"
)

// PassThreshold is the lowest quality counted as a successful recall.
const PassThreshold = 3

// Engine computes spaced-repetition schedules from review quality scores
// (0-5). Now is the clock used for due-ness checks and next-review dates;
// tests override it.
type Engine struct {
	Now func() time.Time
}

// New creates an engine on the system clock.
func New() *Engine {
	return &Engine{Now: time.Now}
}

// CalculateNextReview returns a copy of record with the scheduling state
// advanced by one review of the given quality, clamped to 0..5. Only the
// SM-2 fields change; counters, mastery level and all descriptive fields
// pass through untouched.
func (e *Engine) CalculateNextReview(record models.MasteryRecord, quality int) models.MasteryRecord {
	if quality < 0 {
		quality = 0
	}
	if quality > 5 {
		quality = 5
	}

	ef := record.EffectiveEaseFactor()
	switch {
	case quality >= 4:
		ef += 0.1
	case quality == 3:
		ef += 0.05
	case quality == 2:
		ef -= 0.15
	default:
		ef -= 0.2
	}
	if ef < models.MinEaseFactor {
		ef = models.MinEaseFactor
	}

	var interval, repetitions int
	if quality < PassThreshold {
		// Failed recall: back to a one-day interval, streak reset.
		repetitions = 0
		interval = 1
	} else {
		switch record.Repetitions {
		case 0:
			interval = 1
		case 1:
			interval = 6
		default:
			previous := record.Interval
			if previous == 0 {
				previous = 6
			}
			interval = int(math.Round(float64(previous) * ef))
		}
		repetitions = record.Repetitions + 1
	}

	next := e.Now().AddDate(0, 0, interval)
	record.EaseFactor = ef
	record.Interval = interval
	record.Repetitions = repetitions
	record.NextReview = &next
	return record
}

// IsDueForReview reports whether the record should be reviewed now. A record
// that has never been scheduled (nil NextReview) is always due.
func (e *Engine) IsDueForReview(record models.MasteryRecord) bool {
	return isDueAt(record, e.Now())
}

func isDueAt(record models.MasteryRecord, now time.Time) bool {
	if record.NextReview == nil {
		return true
	}
	return !now.Before(*record.NextReview)
}

// WordsDueForReview filters records down to the ones due now.
func (e *Engine) WordsDueForReview(records []models.MasteryRecord) []models.MasteryRecord {
	now := e.Now()
	var due []models.MasteryRecord
	for _, record := range records {
		if isDueAt(record, now) {
			due = append(due, record)
		}
	}
	return due
}

// SortWordsByPriority returns the records ordered for review: all due
// records first, weakest retention (lowest ease factor) leading; then the
// not-yet-due records by soonest next review. The sort is stable.
func (e *Engine) SortWordsByPriority(records []models.MasteryRecord) []models.MasteryRecord {
	now := e.Now()
	sorted := make([]models.MasteryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		dueI, dueJ := isDueAt(sorted[i], now), isDueAt(sorted[j], now)
		if dueI != dueJ {
			return dueI
		}
		if dueI {
			return sorted[i].EffectiveEaseFactor() < sorted[j].EffectiveEaseFactor()
		}
		return sorted[i].NextReview.Before(*sorted[j].NextReview)
	})
	return sorted
}
