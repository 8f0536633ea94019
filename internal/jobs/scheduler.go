// Package jobs manages background tasks (cron).
// scheduler.go wires the hourly spin-ready reminders.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/wheelproject/wheel-backend/internal/features/wheel"
)

// Scheduler manages the background tasks.
type Scheduler struct {
	cron     *cron.Cron
	reminder *wheel.Reminder
	sendFunc func(userID int64, text string)
}

func NewScheduler(reminder *wheel.Reminder, sendFunc func(userID int64, text string)) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		reminder: reminder,
		sendFunc: sendFunc,
	}
}

// Start registers and launches all background tasks.
func (s *Scheduler) Start(ctx context.Context) {
	// Spin-ready reminders, every hour on the hour
	s.cron.AddFunc("0 * * * *", func() {
		log.Debug("[CRON] checking spin reminders")
		if err := s.reminder.Send(ctx, s.sendFunc); err != nil {
			log.WithError(err).Error("[CRON] failed to send spin reminders")
		}
	})

	s.cron.Start()
	log.Info("Scheduler started")
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Scheduler stopped")
}
