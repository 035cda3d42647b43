package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"sarhisob/internal/core"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "sarhisob.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestAppendListRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	rec := core.Record{
		ID:          "11111111-1111-1111-1111-111111111111",
		Amount:      core.Money{Cents: 2500000},
		Kind:        core.Credit,
		Category:    core.CategoryLoanPayment,
		OccurredOn:  core.NewDate(2025, 6, 10),
		DueOn:       core.NewDate(2025, 6, 25),
		Recurring:   true,
		Description: "kredit",
	}
	if _, err := repo.Append(ctx, rec); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || !reflect.DeepEqual(got[0], rec) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, rec)
	}
}

func TestListOrdering(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	older := core.Record{ID: "a", Amount: core.Money{Cents: 100}, Kind: core.Expense,
		Category: core.CategoryFood, OccurredOn: core.NewDate(2025, 6, 1)}
	newer := core.Record{ID: "b", Amount: core.Money{Cents: 200}, Kind: core.Expense,
		Category: core.CategoryFood, OccurredOn: core.NewDate(2025, 6, 15)}
	for _, r := range []core.Record{older, newer} {
		if _, err := repo.Append(ctx, r); err != nil {
			t.Fatalf("append %s: %v", r.ID, err)
		}
	}

	got, err := repo.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("expected newest first, got %+v", got)
	}
}

func TestRemoveRecord(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	rec := core.Record{ID: "gone", Amount: core.Money{Cents: 100}, Kind: core.Expense,
		Category: core.CategoryFood, OccurredOn: core.NewDate(2025, 6, 1)}
	if _, err := repo.Append(ctx, rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Remove(ctx, "missing"); err == nil {
		t.Fatalf("expected error for unknown id")
	}
	if err := repo.Remove(ctx, "gone"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, _ := repo.ListRecords(ctx)
	if len(got) != 0 {
		t.Fatalf("expected empty after remove, got %d", len(got))
	}
}

func TestSettingsDefaultAndReplace(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	s, err := repo.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if s != core.DefaultSettings() {
		t.Fatalf("fresh database must hold defaults, got %+v", s)
	}

	next := core.Settings{Salary: core.Money{Cents: 100000000}, Currency: "so'm"}
	if err := repo.SaveSettings(ctx, next); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	s, err = repo.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if s != next {
		t.Fatalf("settings replace mismatch: got %+v, want %+v", s, next)
	}
}

func TestWipeResetsEverything(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	rec := core.Record{ID: "x", Amount: core.Money{Cents: 100}, Kind: core.Expense,
		Category: core.CategoryFood, OccurredOn: core.NewDate(2025, 6, 1)}
	if _, err := repo.Append(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveSettings(ctx, core.Settings{Salary: core.Money{Cents: 500}, Currency: "so'm"}); err != nil {
		t.Fatal(err)
	}

	if err := repo.Wipe(ctx); err != nil {
		t.Fatalf("wipe: %v", err)
	}
	records, _ := repo.ListRecords(ctx)
	settings, _ := repo.Settings(ctx)
	if len(records) != 0 || settings != core.DefaultSettings() {
		t.Fatalf("wipe must reset store: %d records, %+v", len(records), settings)
	}
}
