package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sarhisob/internal/amqp"
	"sarhisob/internal/core"
	"sarhisob/internal/ledger"
)

// LedgerService orchestrates record operations across the store and AMQP.
type LedgerService struct {
	store      ledger.Store
	amqpClient *amqp.Client
}

func NewLedgerService(store ledger.Store, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// Overview is the derived state rendered on the dashboard.
type Overview struct {
	Summary   core.Summary
	Reminders []core.Reminder
	Records   []core.Record
	Settings  core.Settings
}

// AddRecord assigns an ID, persists the record and publishes a change event.
func (s *LedgerService) AddRecord(ctx context.Context, r core.Record) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if err := r.Validate(); err != nil {
		return "", err
	}

	// Save to the store first (fast, reliable)
	id, err := s.store.Append(ctx, r)
	if err != nil {
		return "", fmt.Errorf("save record: %w", err)
	}

	// Publish async change event (non-blocking)
	due := ""
	if !r.DueOn.IsZero() {
		due = r.DueOn.String()
	}
	if err := s.publishEvent(ctx, amqp.EventRecordCreated, id, string(r.Kind), due); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record created event",
			"id", id, "error", err)
		// Don't fail the request - the record is saved locally
	}

	return id, nil
}

// DeleteRecord removes a record and publishes a change event.
func (s *LedgerService) DeleteRecord(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	if err := s.publishEvent(ctx, amqp.EventRecordDeleted, id, "", ""); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record deleted event",
			"id", id, "error", err)
	}

	return nil
}

// Records returns the full collection, newest first.
func (s *LedgerService) Records(ctx context.Context) ([]core.Record, error) {
	return s.store.ListRecords(ctx)
}

// Settings returns the persisted settings, falling back to defaults.
func (s *LedgerService) Settings(ctx context.Context) (core.Settings, error) {
	return s.store.Settings(ctx)
}

// UpdateSettings validates and replaces the settings record.
func (s *LedgerService) UpdateSettings(ctx context.Context, settings core.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// ClearAll wipes every record and resets settings to defaults.
func (s *LedgerService) ClearAll(ctx context.Context) error {
	if err := s.store.Wipe(ctx); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}

	if err := s.publishEvent(ctx, amqp.EventStoreCleared, "", "", ""); err != nil {
		slog.ErrorContext(ctx, "Failed to publish store cleared event", "error", err)
	}

	return nil
}

// Overview loads records and settings and derives the current month
// summary plus the due date reminders.
func (s *LedgerService) Overview(ctx context.Context, now time.Time) (Overview, error) {
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list records: %w", err)
	}
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("load settings: %w", err)
	}

	return Overview{
		Summary:   core.ComputeSummary(records, settings, now),
		Reminders: core.UpcomingReminders(records, now),
		Records:   records,
		Settings:  settings,
	}, nil
}

func (s *LedgerService) publishEvent(ctx context.Context, event amqp.LedgerEvent, recordID, kind, dueOn string) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping event", "event", string(event))
		return nil
	}

	return s.amqpClient.PublishLedgerEvent(ctx, amqp.NewLedgerEventMessage(event, recordID, kind, dueOn))
}

// Close closes the AMQP connection. The store is owned by the backend
// factory and closed through its cleanup function.
func (s *LedgerService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp: %w", err)
		}
	}
	return nil
}
