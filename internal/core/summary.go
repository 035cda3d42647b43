package core

import "time"

// CategoryAmount is an amount aggregated under one category label.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// Summary is the derived snapshot for the calendar month containing "now".
// It is recomputed on demand and never persisted.
type Summary struct {
	// FixedCosts is the committed monthly spend: CREDIT + DEBT + UTILITY.
	FixedCosts Money
	// Expenses is the discretionary EXPENSE total.
	Expenses Money
	// Income is the INCOME total, on top of the salary baseline.
	Income Money
	// RemainingDays counts today through the last day of the month, never < 1.
	RemainingDays int
	// DailyLimit is the suggested discretionary spend per remaining day,
	// clamped at zero for display even when disposable income is negative.
	DailyLimit Money
	// Balance may go negative, signaling overspend.
	Balance Money
	// TotalSpent is expenses plus fixed costs.
	TotalSpent Money
	// ByCategory holds EXPENSE+CREDIT sums per category, in the fixed
	// enumeration order, with zero-sum categories omitted.
	ByCategory []CategoryAmount
}

// ComputeSummary derives the monthly snapshot from the full record
// collection and the current settings. It is a pure function of its
// arguments, including now; callers pass the clock explicitly.
func ComputeSummary(records []Record, settings Settings, now time.Time) Summary {
	var fixed, expenses, income int64
	monthly := make([]Record, 0, len(records))
	for _, r := range records {
		if !r.OccurredOn.SameMonth(now) {
			continue
		}
		monthly = append(monthly, r)
		switch r.Kind {
		case Expense:
			expenses += r.Amount.Cents
		case Income:
			income += r.Amount.Cents
		case Credit, Debt, Utility:
			fixed += r.Amount.Cents
		}
	}

	remaining := daysInMonth(now) - now.Day() + 1
	// Floor at one day so the projection never divides by zero. The
	// alternative of letting the last day collapse the limit to zero was
	// rejected: on the last day the whole leftover is still spendable.
	if remaining < 1 {
		remaining = 1
	}

	disposable := settings.Salary.Cents - fixed
	limit := (disposable - expenses) / int64(remaining)
	if limit < 0 {
		limit = 0
	}

	s := Summary{
		FixedCosts:    Money{Cents: fixed},
		Expenses:      Money{Cents: expenses},
		Income:        Money{Cents: income},
		RemainingDays: remaining,
		DailyLimit:    Money{Cents: limit},
		Balance:       Money{Cents: settings.Salary.Cents + income - expenses - fixed},
		TotalSpent:    Money{Cents: expenses + fixed},
	}

	for _, cat := range Categories {
		var sum int64
		for _, r := range monthly {
			if r.Category != cat {
				continue
			}
			switch r.Kind {
			case Expense, Credit:
				sum += r.Amount.Cents
			case Income, Debt, Utility:
				// breakdown covers discretionary and credit spend only
			}
		}
		if sum > 0 {
			s.ByCategory = append(s.ByCategory, CategoryAmount{Category: cat, Amount: Money{Cents: sum}})
		}
	}

	return s
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
