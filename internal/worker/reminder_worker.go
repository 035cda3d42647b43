// Package worker surfaces upcoming due dates outside the web UI. It reacts
// to ledger change events and re-checks on a timer, logging every record
// due within the reminder window.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sarhisob/internal/amqp"
	"sarhisob/internal/core"
	"sarhisob/internal/ledger"
)

// ReminderWorker re-derives the reminder set from the store whenever the
// ledger changes and once per interval.
type ReminderWorker struct {
	store ledger.RecordLister
	now   func() time.Time
}

func NewReminderWorker(store ledger.RecordLister) *ReminderWorker {
	return &ReminderWorker{
		store: store,
		now:   time.Now,
	}
}

// HandleEvent processes a single ledger change event from AMQP.
func (w *ReminderWorker) HandleEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"event", string(msg.Event),
		"record_id", msg.RecordID)

	// A cleared store has nothing due; skip the list round-trip.
	if msg.Event == amqp.EventStoreCleared {
		slog.InfoContext(ctx, "Store cleared, no reminders outstanding")
		return nil
	}

	return w.CheckReminders(ctx)
}

// CheckReminders lists the current records and logs every upcoming due date.
func (w *ReminderWorker) CheckReminders(ctx context.Context) error {
	records, err := w.store.ListRecords(ctx)
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}

	reminders := core.UpcomingReminders(records, w.now())
	if len(reminders) == 0 {
		slog.InfoContext(ctx, "No upcoming due dates")
		return nil
	}

	for _, rem := range reminders {
		slog.InfoContext(ctx, "Payment due soon",
			"record_id", rem.Record.ID,
			"kind", string(rem.Record.Kind),
			"amount_cents", rem.Record.Amount.Cents,
			"due_on", rem.Record.DueOn.String(),
			"due_in_days", rem.DueIn,
			"description", rem.Record.Description)
	}

	slog.InfoContext(ctx, "Reminder check complete", "upcoming", len(reminders))
	return nil
}

// Run performs an initial check, then repeats every interval until ctx is
// cancelled. Event-driven checks happen separately through HandleEvent.
func (w *ReminderWorker) Run(ctx context.Context, interval time.Duration) error {
	if err := w.CheckReminders(ctx); err != nil {
		slog.ErrorContext(ctx, "Initial reminder check failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Reminder worker stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.CheckReminders(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic reminder check failed", "error", err)
			}
		}
	}
}
