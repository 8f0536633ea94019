// Package wheel — reminders.go nudges players whose free spin is ready.
package wheel

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wheelproject/wheel-backend/internal/features/account"
)

const reminderText = "🎰 Your free spin is ready!\n\nCome back and spin the wheel for a chance to win coins or an NFT."

// ReminderLister yields accounts whose last spin falls inside a window.
// *account.Repository is the production implementation.
type ReminderLister interface {
	ListCooldownElapsedBetween(ctx context.Context, from, to time.Time) ([]*account.Account, error)
}

// Reminder sends a one-off "your spin is ready" DM to every account whose
// cooldown elapsed since the previous run. The job runs hourly and the
// window is the matching hour one cooldown ago, so each account is picked
// up at most once per spin.
type Reminder struct {
	accounts ReminderLister
	now      func() time.Time
}

func NewReminder(accounts ReminderLister) *Reminder {
	return &Reminder{accounts: accounts, now: time.Now}
}

// Send delivers reminders via send. Delivery failures are the sender's
// problem; a user who blocked the bot must not stall the rest.
func (r *Reminder) Send(ctx context.Context, send func(userID int64, text string)) error {
	now := r.now()
	from := now.Add(-SpinCooldown - time.Hour)
	to := now.Add(-SpinCooldown)

	candidates, err := r.accounts.ListCooldownElapsedBetween(ctx, from, to)
	if err != nil {
		return err
	}

	for _, a := range candidates {
		send(a.ID, reminderText)
	}

	if len(candidates) > 0 {
		log.WithField("count", len(candidates)).Info("Spin reminders sent")
	}
	return nil
}
