package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabkit/internal/mastery"
	"github.com/example/vocabkit/internal/sm2"
	"github.com/example/vocabkit/internal/storage"
	"github.com/example/vocabkit/pkg/models"
)

var testNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func testTracker(t *testing.T) (*Tracker, *mastery.Store) {
	t.Helper()
	store := mastery.New(storage.NewMemory())
	tr := New(store)
	tr.now = func() time.Time { return testNow }
	return tr, store
}

func TestTrackWordCreatesRecord(t *testing.T) {
	tr, store := testTracker(t)
	tr.TrackWord("casa", "maison", "vocab", "home", true, "mi casa es su casa")

	record, ok := store.GetByID(models.RecordID("casa", "maison"))
	require.True(t, ok)
	assert.Equal(t, "casa", record.Word)
	assert.Equal(t, "maison", record.Translation)
	assert.Equal(t, "vocab", record.Category)
	assert.Equal(t, "home", record.Topic)
	assert.Equal(t, "mi casa es su casa", record.Context)
	assert.Equal(t, testNow, record.LastReviewed)
	assert.Equal(t, 1, record.TimesReviewed)
	assert.Equal(t, 1, record.TimesCorrect)
	assert.Equal(t, 100, record.MasteryLevel)
}

func TestTrackWordFirstWrong(t *testing.T) {
	tr, store := testTracker(t)
	tr.TrackWord("perro", "chien", "vocab", "animals", false, "")

	record, ok := store.GetByID(models.RecordID("perro", "chien"))
	require.True(t, ok)
	assert.Equal(t, 1, record.TimesReviewed)
	assert.Zero(t, record.TimesCorrect)
	assert.Zero(t, record.MasteryLevel)
}

// One right and one wrong answer land at 50% accuracy on the same record.
func TestTrackWordAccumulates(t *testing.T) {
	tr, store := testTracker(t)
	tr.TrackWord("casa", "maison", "vocab", "home", true, "")
	tr.TrackWord("casa", "maison", "vocab", "home", false, "")

	records := store.GetAll()
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].TimesReviewed)
	assert.Equal(t, 1, records[0].TimesCorrect)
	assert.Equal(t, 50, records[0].MasteryLevel)
}

func TestTrackWordRepeatedCorrect(t *testing.T) {
	tr, store := testTracker(t)
	tr.TrackWord("casa", "maison", "vocab", "home", true, "")
	tr.TrackWord("casa", "maison", "vocab", "home", true, "")

	record, ok := store.GetByID(models.RecordID("casa", "maison"))
	require.True(t, ok)
	assert.Equal(t, 2, record.TimesReviewed)
	assert.Equal(t, 100, record.MasteryLevel)
}

func TestTrackWordCaseInsensitive(t *testing.T) {
	tr, store := testTracker(t)
	tr.TrackWord("Casa", "Maison", "vocab", "home", true, "")
	tr.TrackWord("CASA", "maison", "vocab", "home", false, "")

	records := store.GetAll()
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].TimesReviewed)
}

// Tracking must never touch the scheduling channel: a word can hold perfect
// quiz accuracy and still be due for its first scheduled review.
func TestTrackWordLeavesSchedulingAlone(t *testing.T) {
	tr, store := testTracker(t)
	next := testNow.AddDate(0, 0, 6)
	store.SaveAll([]models.MasteryRecord{{
		ID:          models.RecordID("casa", "maison"),
		Word:        "casa",
		Translation: "maison",
		EaseFactor:  2.7,
		Interval:    6,
		Repetitions: 2,
		NextReview:  &next,
	}})

	tr.TrackWord("casa", "maison", "vocab", "home", true, "")

	record, ok := store.GetByID(models.RecordID("casa", "maison"))
	require.True(t, ok)
	assert.InDelta(t, 2.7, record.EaseFactor, 1e-9)
	assert.Equal(t, 6, record.Interval)
	assert.Equal(t, 2, record.Repetitions)
	require.NotNil(t, record.NextReview)
	assert.Equal(t, next, *record.NextReview)
	assert.Equal(t, 1, record.TimesReviewed)
}

func TestNewlyTrackedWordIsImmediatelyDue(t *testing.T) {
	tr, store := testTracker(t)
	tr.TrackWord("casa", "maison", "vocab", "home", true, "")

	record, ok := store.GetByID(models.RecordID("casa", "maison"))
	require.True(t, ok)
	assert.Nil(t, record.NextReview)
	assert.Zero(t, record.EaseFactor, "ease factor stays unset until the first scheduled review")

	engine := &sm2.Engine{Now: func() time.Time { return testNow }}
	assert.True(t, engine.IsDueForReview(*record))
}

func TestTrackWordCapacity(t *testing.T) {
	store := mastery.NewWithCapacity(storage.NewMemory(), 2)
	tr := New(store)
	base := testNow
	step := 0
	tr.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}

	tr.TrackWord("uno", "one", "vocab", "numbers", true, "")
	tr.TrackWord("dos", "two", "vocab", "numbers", true, "")
	tr.TrackWord("tres", "three", "vocab", "numbers", true, "")

	records := store.GetAll()
	require.Len(t, records, 2)
	assert.Equal(t, "tres", records[0].Word)
	assert.Equal(t, "dos", records[1].Word)
}
