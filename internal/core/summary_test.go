package core

import (
	"testing"
	"time"
)

// so'm amounts in these tests are whole units; cents carry the *100 factor.
func som(units int64) Money { return Money{Cents: units * 100} }

func TestComputeSummaryWorkedExample(t *testing.T) {
	// salary 1,000,000; one EXPENSE of 200,000 and one CREDIT of 100,000
	// dated today; 10 days left in the month including today.
	now := time.Date(2025, 6, 21, 14, 30, 0, 0, time.UTC) // June has 30 days
	records := []Record{
		{ID: "e", Amount: som(200000), Kind: Expense, Category: CategoryFood, OccurredOn: DateOf(now)},
		{ID: "c", Amount: som(100000), Kind: Credit, Category: CategoryLoanPayment, OccurredOn: DateOf(now)},
	}
	settings := Settings{Salary: som(1000000), Currency: DefaultCurrency}

	s := ComputeSummary(records, settings, now)

	if s.RemainingDays != 10 {
		t.Fatalf("remainingDays = %d, want 10", s.RemainingDays)
	}
	if s.FixedCosts != som(100000) {
		t.Fatalf("fixedCosts = %v, want 100000", s.FixedCosts)
	}
	if s.Expenses != som(200000) {
		t.Fatalf("expenses = %v, want 200000", s.Expenses)
	}
	if s.DailyLimit != som(70000) {
		t.Fatalf("dailyLimit = %v, want 70000", s.DailyLimit)
	}
	if s.Balance != som(700000) {
		t.Fatalf("balance = %v, want 700000", s.Balance)
	}
	if s.TotalSpent != som(300000) {
		t.Fatalf("totalSpent = %v, want 300000", s.TotalSpent)
	}
}

func TestComputeSummaryBalanceIdentity(t *testing.T) {
	now := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{ID: "1", Amount: som(300), Kind: Income, Category: CategoryOther, OccurredOn: NewDate(2025, 2, 1)},
		{ID: "2", Amount: som(120), Kind: Expense, Category: CategoryFood, OccurredOn: NewDate(2025, 2, 5)},
		{ID: "3", Amount: som(80), Kind: Debt, Category: CategoryLoanPayment, OccurredOn: NewDate(2025, 2, 8), DueOn: NewDate(2025, 2, 28)},
		{ID: "4", Amount: som(40), Kind: Utility, Category: CategoryUtilities, OccurredOn: NewDate(2025, 2, 9)},
	}
	settings := Settings{Salary: som(500), Currency: DefaultCurrency}
	s := ComputeSummary(records, settings, now)

	want := settings.Salary.Cents + s.Income.Cents - s.Expenses.Cents - s.FixedCosts.Cents
	if s.Balance.Cents != want {
		t.Fatalf("balance identity broken: got %d, want %d", s.Balance.Cents, want)
	}
	if s.Income != som(300) || s.Expenses != som(120) || s.FixedCosts != som(120) {
		t.Fatalf("partition wrong: income=%v expenses=%v fixed=%v", s.Income, s.Expenses, s.FixedCosts)
	}
}

func TestComputeSummaryMonthBoundaries(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{ID: "first", Amount: som(10), Kind: Expense, Category: CategoryFood, OccurredOn: NewDate(2025, 3, 1)},
		{ID: "last", Amount: som(20), Kind: Expense, Category: CategoryFood, OccurredOn: NewDate(2025, 3, 31)},
		{ID: "next", Amount: som(40), Kind: Expense, Category: CategoryFood, OccurredOn: NewDate(2025, 4, 1)},
		{ID: "prev-year", Amount: som(80), Kind: Expense, Category: CategoryFood, OccurredOn: NewDate(2024, 3, 20)},
	}
	s := ComputeSummary(records, DefaultSettings(), now)
	if s.Expenses != som(30) {
		t.Fatalf("expenses = %v, want 30 (first+last day of month only)", s.Expenses)
	}
}

func TestComputeSummaryDailyLimitClamp(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{ID: "big", Amount: som(900), Kind: Expense, Category: CategoryShopping, OccurredOn: DateOf(now)},
	}
	s := ComputeSummary(records, Settings{Salary: som(100), Currency: DefaultCurrency}, now)
	if s.DailyLimit.Cents != 0 {
		t.Fatalf("dailyLimit = %v, want 0 when overspent", s.DailyLimit)
	}
	if s.Balance.Cents >= 0 {
		t.Fatalf("balance should go negative, got %v", s.Balance)
	}
}

func TestComputeSummaryLastDayOfMonth(t *testing.T) {
	now := time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)
	s := ComputeSummary(nil, Settings{Salary: som(310), Currency: DefaultCurrency}, now)
	if s.RemainingDays != 1 {
		t.Fatalf("remainingDays = %d, want 1 on the last day", s.RemainingDays)
	}
	if s.DailyLimit != som(310) {
		t.Fatalf("dailyLimit = %v, want full leftover on last day", s.DailyLimit)
	}
}

func TestComputeSummaryEmpty(t *testing.T) {
	now := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	s := ComputeSummary(nil, DefaultSettings(), now)
	if s.FixedCosts.Cents != 0 || s.Expenses.Cents != 0 || s.Income.Cents != 0 ||
		s.Balance.Cents != 0 || s.TotalSpent.Cents != 0 || s.DailyLimit.Cents != 0 {
		t.Fatalf("empty collection must yield all-zero aggregates: %+v", s)
	}
	if len(s.ByCategory) != 0 {
		t.Fatalf("empty collection must yield empty breakdown")
	}
	if s.RemainingDays < 1 {
		t.Fatalf("remainingDays must never drop below 1")
	}
}

func TestComputeSummaryCategoryBreakdown(t *testing.T) {
	now := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	records := []Record{
		// insertion order deliberately scrambled against enumeration order
		{ID: "1", Amount: som(50), Kind: Credit, Category: CategoryLoanPayment, OccurredOn: DateOf(now)},
		{ID: "2", Amount: som(30), Kind: Expense, Category: CategoryFood, OccurredOn: DateOf(now)},
		{ID: "3", Amount: som(20), Kind: Expense, Category: CategoryFood, OccurredOn: DateOf(now)},
		// income and debt never enter the breakdown
		{ID: "4", Amount: som(99), Kind: Income, Category: CategoryFood, OccurredOn: DateOf(now)},
		{ID: "5", Amount: som(77), Kind: Debt, Category: CategoryTransport, OccurredOn: DateOf(now)},
		// utility spend also stays out of the EXPENSE+CREDIT rollup
		{ID: "6", Amount: som(15), Kind: Utility, Category: CategoryUtilities, OccurredOn: DateOf(now)},
	}
	s := ComputeSummary(records, DefaultSettings(), now)

	if len(s.ByCategory) != 2 {
		t.Fatalf("breakdown rows = %d, want 2: %+v", len(s.ByCategory), s.ByCategory)
	}
	// food precedes loan-payment in the fixed enumeration order
	if s.ByCategory[0].Category != CategoryFood || s.ByCategory[0].Amount != som(50) {
		t.Fatalf("row 0 = %+v, want food/50", s.ByCategory[0])
	}
	if s.ByCategory[1].Category != CategoryLoanPayment || s.ByCategory[1].Amount != som(50) {
		t.Fatalf("row 1 = %+v, want loan-payment/50", s.ByCategory[1])
	}
}
