// Package scheduler runs the periodic due-review reminder check.
package scheduler

import (
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/vocabkit/internal/logger"
	"github.com/example/vocabkit/internal/session"
)

// Default reminder window in local hours.
const (
	DefaultReminderStartHour = 8
	DefaultReminderEndHour   = 22
)

// Notifier delivers a due-review reminder. Delivery (push, chat, mail) lives
// outside the engine; the scheduler only computes the due count.
type Notifier interface {
	SendReminder(dueCount int) error
}

// LogNotifier is the fallback Notifier: it just logs the reminder.
type LogNotifier struct{}

// SendReminder logs the due count.
func (LogNotifier) SendReminder(dueCount int) error {
	logger.Info("words due for review", "count", dueCount)
	return nil
}

// Scheduler periodically checks how many words are due and hands the count
// to the notifier.
type Scheduler struct {
	scheduler *gocron.Scheduler
	builder   *session.Builder
	notifier  Notifier
}

// New creates a scheduler over the given session builder. A nil notifier
// falls back to LogNotifier.
func New(builder *session.Builder, notifier Notifier) *Scheduler {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		builder:   builder,
		notifier:  notifier,
	}
}

// Start schedules the hourly due check and runs it in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkDueWords)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkDueWords sends a reminder when words are due and the current hour is
// inside the reminder window.
func (s *Scheduler) checkDueWords() {
	currentHour := time.Now().Hour()
	startHour, endHour := reminderWindow()
	if currentHour < startHour || currentHour > endHour {
		logger.Debug("current hour is outside reminder window, skipping",
			"hour", currentHour, "start", startHour, "end", endHour)
		return
	}

	stats := s.builder.Stats()
	if stats.DueForReview == 0 {
		return
	}
	if err := s.notifier.SendReminder(stats.DueForReview); err != nil {
		logger.Error("failed to send reminder", "error", err)
	}
}

// reminderWindow reads the reminder hours from the environment, falling back
// to the defaults.
func reminderWindow() (int, int) {
	startHour := DefaultReminderStartHour
	endHour := DefaultReminderEndHour

	if v := os.Getenv("REMINDER_START_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			startHour = h
		}
	}
	if v := os.Getenv("REMINDER_END_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			endHour = h
		}
	}
	return startHour, endHour
}
