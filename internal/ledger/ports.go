package ledger

import (
	"context"

	"sarhisob/internal/core"
)

// Ports for outbound record-store adapters.
type (
	RecordWriter interface {
		Append(ctx context.Context, r core.Record) (id string, err error)
	}

	RecordRemover interface {
		Remove(ctx context.Context, id string) error
	}

	// RecordLister returns the full ordered record collection,
	// newest first.
	RecordLister interface {
		ListRecords(ctx context.Context) ([]core.Record, error)
	}

	// SettingsStore reads and replaces the single settings record.
	SettingsStore interface {
		Settings(ctx context.Context) (core.Settings, error)
		SaveSettings(ctx context.Context, s core.Settings) error
	}

	// Wiper removes every record and resets settings to defaults.
	Wiper interface {
		Wipe(ctx context.Context) error
	}
)

// Store is the unified backend contract the service layer works against.
type Store interface {
	RecordWriter
	RecordRemover
	RecordLister
	SettingsStore
	Wiper
}
