package models

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strings"
	"time"
)

// SM-2 parameters for records that have never been scheduled.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// MasteryRecord tracks a learner's knowledge of a single (word, translation) pair.
//
// It carries two independent signals. MasteryLevel is a plain accuracy ratio
// maintained by the exercise tracker; the SM-2 fields (EaseFactor, Interval,
// Repetitions, NextReview) belong to the review scheduler. The two can
// disagree: a word may sit at 100% accuracy from quizzes and still be due for
// its first scheduled review.
type MasteryRecord struct {
	ID            string    `json:"id"`
	Word          string    `json:"word"`
	Translation   string    `json:"translation"`
	Category      string    `json:"category"`
	Topic         string    `json:"topic"`
	LastReviewed  time.Time `json:"last_reviewed"`
	MasteryLevel  int       `json:"mastery_level"`
	TimesReviewed int       `json:"times_reviewed"`
	TimesCorrect  int       `json:"times_correct"`
	Context       string    `json:"context,omitempty"`

	// SM-2 scheduling state. Zero values mean "never scheduled": an
	// EaseFactor of 0 reads as 2.5 and a nil NextReview means due now.
	EaseFactor  float64    `json:"ease_factor,omitempty"`
	Interval    int        `json:"interval,omitempty"`
	Repetitions int        `json:"repetitions,omitempty"`
	NextReview  *time.Time `json:"next_review,omitempty"`
}

// RecordID derives the stable identifier for a (word, translation) pair.
// The pair is lowercased first, so casing differences always address the
// same record.
func RecordID(word, translation string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(word) + "|" + strings.ToLower(translation)))
	return hex.EncodeToString(sum[:])
}

// EffectiveEaseFactor returns the ease factor with the unset default applied.
func (r *MasteryRecord) EffectiveEaseFactor() float64 {
	if r.EaseFactor == 0 {
		return DefaultEaseFactor
	}
	return r.EaseFactor
}

// RecomputeMasteryLevel refreshes the accuracy percentage from the raw
// counters. It is the only way MasteryLevel is ever set.
func (r *MasteryRecord) RecomputeMasteryLevel() {
	if r.TimesReviewed == 0 {
		r.MasteryLevel = 0
		return
	}
	r.MasteryLevel = int(math.Round(float64(r.TimesCorrect) / float64(r.TimesReviewed) * 100))
}
