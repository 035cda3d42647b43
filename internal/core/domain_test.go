package core

import (
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in  string
		out Kind
		ok  bool
	}{
		{"EXPENSE", Expense, true},
		{"income", Income, true},
		{" credit ", Credit, true},
		{"DEBT", Debt, true},
		{"UTILITY", Utility, true},
		{"TRANSFER", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in  string
		out Category
		ok  bool
	}{
		{"food", CategoryFood, true},
		{"LOAN-PAYMENT", CategoryLoanPayment, true},
		{"", CategoryOther, true}, // unselected defaults to other
		{"crypto", "", false},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestRecordValidate(t *testing.T) {
	good := Record{
		ID:         "r1",
		Amount:     Money{Cents: 100},
		Kind:       Expense,
		Category:   CategoryFood,
		OccurredOn: NewDate(2025, 1, 15),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	withDue := good
	withDue.Kind = Debt
	withDue.DueOn = NewDate(2025, 1, 20)
	if err := withDue.Validate(); err != nil {
		t.Fatalf("debt with due date should validate, got %v", err)
	}

	bads := []Record{
		{ID: "a", Amount: Money{Cents: 0}, Kind: Expense, Category: CategoryFood, OccurredOn: NewDate(2025, 1, 1)},
		{ID: "b", Amount: Money{Cents: 1}, Kind: "TRANSFER", Category: CategoryFood, OccurredOn: NewDate(2025, 1, 1)},
		{ID: "c", Amount: Money{Cents: 1}, Kind: Expense, Category: "crypto", OccurredOn: NewDate(2025, 1, 1)},
		{ID: "d", Amount: Money{Cents: 1}, Kind: Expense, Category: CategoryFood},
		// due date on a plain expense
		{ID: "e", Amount: Money{Cents: 1}, Kind: Expense, Category: CategoryFood, OccurredOn: NewDate(2025, 1, 1), DueOn: NewDate(2025, 1, 5)},
	}
	for i, r := range bads {
		if err := r.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("defaults must validate, got %v", err)
	}
	if err := (Settings{Salary: Money{Cents: -1}, Currency: "so'm"}).Validate(); err == nil {
		t.Fatalf("expected error for negative salary")
	}
	if err := (Settings{Salary: Money{Cents: 1}, Currency: " "}).Validate(); err == nil {
		t.Fatalf("expected error for empty currency")
	}
}

func TestDateSameMonth(t *testing.T) {
	d := NewDate(2025, 3, 31)
	if !d.SameMonth(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("last day of month must match first day's month")
	}
	if d.SameMonth(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("different month must not match")
	}
	if d.SameMonth(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("same month of a different year must not match")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-28")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2025-02-28" {
		t.Fatalf("round trip mismatch: %s", d)
	}
	if _, err := ParseDate("28/02/2025"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
	if (Date{}).String() != "" {
		t.Fatalf("zero date must render empty")
	}
}
