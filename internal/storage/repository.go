// Package storage implements the ledger store on SQLite. It is the durable
// alternative to the JSON-blob file store for installations that outgrow it.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sarhisob/internal/core"
	"sarhisob/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ ledger.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ledger.RecordWriter.
func (r *SQLiteRepository) Append(ctx context.Context, rec core.Record) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	var due sql.NullString
	if !rec.DueOn.IsZero() {
		due = sql.NullString{String: rec.DueOn.String(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO records (id, amount_cents, kind, category, occurred_on, due_on, recurring, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Amount.Cents, string(rec.Kind), string(rec.Category),
		rec.OccurredOn.String(), due, rec.Recurring, rec.Description)
	if err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}

	slog.InfoContext(ctx, "Record saved to SQLite",
		"id", rec.ID,
		"kind", string(rec.Kind),
		"amount_cents", rec.Amount.Cents)

	return rec.ID, nil
}

// Remove implements ledger.RecordRemover.
func (r *SQLiteRepository) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record %s: not found", id)
	}

	slog.InfoContext(ctx, "Record removed from SQLite", "id", id)
	return nil
}

// ListRecords implements ledger.RecordLister, newest first.
func (r *SQLiteRepository) ListRecords(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount_cents, kind, category, occurred_on, due_on, recurring, description
		FROM records
		ORDER BY occurred_on DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		var (
			rec        core.Record
			kind, cat  string
			occurredOn string
			dueOn      sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Amount.Cents, &kind, &cat, &occurredOn, &dueOn, &rec.Recurring, &rec.Description); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Kind = core.Kind(kind)
		rec.Category = core.Category(cat)
		if rec.OccurredOn, err = core.ParseDate(occurredOn); err != nil {
			return nil, fmt.Errorf("parse occurred_on for %s: %w", rec.ID, err)
		}
		if dueOn.Valid {
			if rec.DueOn, err = core.ParseDate(dueOn.String); err != nil {
				return nil, fmt.Errorf("parse due_on for %s: %w", rec.ID, err)
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

// Settings implements ledger.SettingsStore.
func (r *SQLiteRepository) Settings(ctx context.Context) (core.Settings, error) {
	var s core.Settings
	err := r.db.QueryRowContext(ctx, `SELECT salary_cents, currency FROM settings WHERE id = 1`).
		Scan(&s.Salary.Cents, &s.Currency)
	if err == sql.ErrNoRows {
		// The settings row is seeded by migration; a missing row still
		// degrades to defaults rather than erroring.
		return core.DefaultSettings(), nil
	}
	if err != nil {
		return core.Settings{}, fmt.Errorf("query settings: %w", err)
	}
	return s, nil
}

// SaveSettings implements ledger.SettingsStore, replacing the single row.
func (r *SQLiteRepository) SaveSettings(ctx context.Context, s core.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (id, salary_cents, currency) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET salary_cents = excluded.salary_cents, currency = excluded.currency`,
		s.Salary.Cents, s.Currency)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	slog.InfoContext(ctx, "Settings saved to SQLite",
		"salary_cents", s.Salary.Cents,
		"currency", s.Currency)
	return nil
}

// Wipe implements ledger.Wiper.
func (r *SQLiteRepository) Wipe(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin wipe: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("wipe records: %w", err)
	}
	def := core.DefaultSettings()
	if _, err := tx.ExecContext(ctx, `UPDATE settings SET salary_cents = ?, currency = ? WHERE id = 1`,
		def.Salary.Cents, def.Currency); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit wipe: %w", err)
	}

	slog.InfoContext(ctx, "SQLite store wiped")
	return nil
}
