package core

import (
	"errors"
	"strings"
	"time"
)

// Kind classifies how a record contributes to the monthly aggregates.
// The set is closed: aggregation sites switch exhaustively over it so that
// adding a kind forces every site to be revisited.
type Kind string

const (
	Expense Kind = "EXPENSE"
	Income  Kind = "INCOME"
	Credit  Kind = "CREDIT"
	Debt    Kind = "DEBT"
	Utility Kind = "UTILITY"
)

// Kinds lists all record kinds in declaration order.
var Kinds = []Kind{Expense, Income, Credit, Debt, Utility}

// Category is the fixed label set used for the analytics breakdown.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryShopping      Category = "shopping"
	CategoryLoanPayment   Category = "loan-payment"
	CategoryEducation     Category = "education"
	CategoryInvestment    Category = "investment"
	CategoryOther         Category = "other"
)

// Categories is the fixed enumeration order of the category breakdown.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryHealth,
	CategoryShopping,
	CategoryLoanPayment,
	CategoryEducation,
	CategoryInvestment,
	CategoryOther,
}

type (
	// Date is a calendar date with the time-of-day truncated to midnight UTC.
	Date struct {
		time.Time
	}

	// Money is an amount in the user's currency, held in cents.
	Money struct {
		Cents int64
	}

	// Record is a single financial transaction. Records are immutable once
	// created; the only lifecycle operation besides creation is deletion.
	Record struct {
		ID          string
		Amount      Money
		Kind        Kind
		Category    Category
		OccurredOn  Date
		DueOn       Date // optional; meaningful for CREDIT/DEBT only
		Recurring   bool // stored, not used by any aggregation rule
		Description string
	}

	// Settings is the single per-installation settings record,
	// replaced wholesale on update.
	Settings struct {
		Salary   Money
		Currency string
	}
)

// DefaultCurrency is the display label used when no settings exist yet.
const DefaultCurrency = "so'm"

// DefaultSettings returns the zero-salary settings a fresh installation starts with.
func DefaultSettings() Settings {
	return Settings{Salary: Money{}, Currency: DefaultCurrency}
}

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidKind     = errors.New("invalid record kind")
	ErrInvalidCategory = errors.New("invalid category")
	ErrMissingDate     = errors.New("missing date")
	ErrUnexpectedDue   = errors.New("due date only allowed for credit or debt records")
)

// NewDate builds a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// IsEmpty reports whether the date is absent (zero value).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// String renders the date as YYYY-MM-DD, or "" when absent.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// SameMonth reports whether d falls in the same calendar month and year as t.
// Comparison is by calendar fields, not elapsed time.
func (d Date) SameMonth(t time.Time) bool {
	return d.Year() == t.Year() && d.Month() == t.Month()
}

func (k Kind) Valid() bool {
	switch k {
	case Expense, Income, Credit, Debt, Utility:
		return true
	}
	return false
}

// ParseKind accepts the wire spelling of a kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory accepts a category label; the empty string maps to "other",
// matching the add form's behavior when no category is selected.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryOther, nil
	}
	c := Category(s)
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r Record) Validate() error {
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if !r.Kind.Valid() {
		return ErrInvalidKind
	}
	if !r.Category.Valid() {
		return ErrInvalidCategory
	}
	if r.OccurredOn.IsZero() {
		return ErrMissingDate
	}
	if !r.DueOn.IsZero() && r.Kind != Credit && r.Kind != Debt {
		return ErrUnexpectedDue
	}
	if len(r.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (s Settings) Validate() error {
	if s.Salary.Cents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(s.Currency) == "" {
		return errors.New("empty currency label")
	}
	return nil
}
