package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/thomaslekieffre/speedcube-master-sub000/internal/database"
)

// Default notification window: reminders are only sent inside these hours
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Notifier sends due-review reminders to users
type Notifier interface {
	SendDueReminder(userID int64, count int) error
}

// Scheduler runs the periodic due-review sweep
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
}

// New creates a new scheduler instance
func New(notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Hourly sweep for users whose reminder hour just came up
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)

	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// notificationWindow reads the allowed reminder hours from the environment,
// falling back to the defaults
func notificationWindow() (int, int) {
	startHour := DefaultNotificationStartHour
	endHour := DefaultNotificationEndHour

	if v := os.Getenv("NOTIFICATION_START_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			startHour = h
		}
	}
	if v := os.Getenv("NOTIFICATION_END_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			endHour = h
		}
	}

	return startHour, endHour
}

// checkAndSendReminders finds users whose reminder hour matches the current
// hour and tells them how many algorithms are waiting for review
func (s *Scheduler) checkAndSendReminders() {
	now := time.Now()
	currentHour := now.Hour()

	startHour, endHour := notificationWindow()
	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminders",
			currentHour, startHour, endHour)
		return
	}

	userRepo := database.NewUserRepository()
	recordRepo := database.NewLearningRecordRepository()

	users, err := userRepo.GetUsersForNotification(currentHour)
	if err != nil {
		log.Printf("Error getting users for notification: %v", err)
		return
	}

	for _, user := range users {
		due, err := recordRepo.GetDueForUser(user.ID, now)
		if err != nil {
			log.Printf("Error getting due records for user %d: %v", user.ID, err)
			continue
		}
		if len(due) == 0 {
			continue
		}

		// Don't announce more than the user's daily cap
		count := len(due)
		if user.AlgorithmsPerDay > 0 && count > user.AlgorithmsPerDay {
			count = user.AlgorithmsPerDay
		}

		if err := s.notifier.SendDueReminder(user.ID, count); err != nil {
			log.Printf("Error sending reminder to user %d: %v", user.ID, err)
		}
	}
}

// RunManualCheck forces a due-review check for a specific user
func (s *Scheduler) RunManualCheck(userID int64) error {
	recordRepo := database.NewLearningRecordRepository()

	due, err := recordRepo.GetDueForUser(userID, time.Now())
	if err != nil {
		return err
	}

	if len(due) > 0 {
		return s.notifier.SendDueReminder(userID, len(due))
	}
	return nil
}
