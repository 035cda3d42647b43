package file

import (
	"fmt"
	"math"

	"sarhisob/internal/core"
)

// recordJSON is the blob representation of a record. Amounts are written in
// whole currency units; kind and category use their wire spellings.
type recordJSON struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Kind        string  `json:"kind"`
	Category    string  `json:"category"`
	OccurredOn  string  `json:"occurredOn"`
	DueOn       string  `json:"dueOn,omitempty"`
	Recurring   bool    `json:"recurring"`
	Description string  `json:"description,omitempty"`
}

type settingsJSON struct {
	Salary   float64 `json:"salary"`
	Currency string  `json:"currency"`
}

func fromRecord(r core.Record) recordJSON {
	return recordJSON{
		ID:          r.ID,
		Amount:      r.Amount.Units(),
		Kind:        string(r.Kind),
		Category:    string(r.Category),
		OccurredOn:  r.OccurredOn.String(),
		DueOn:       r.DueOn.String(),
		Recurring:   r.Recurring,
		Description: r.Description,
	}
}

func (w recordJSON) toRecord() (core.Record, error) {
	kind, err := core.ParseKind(w.Kind)
	if err != nil {
		return core.Record{}, err
	}
	cat, err := core.ParseCategory(w.Category)
	if err != nil {
		return core.Record{}, err
	}
	occurred, err := core.ParseDate(w.OccurredOn)
	if err != nil {
		return core.Record{}, fmt.Errorf("occurredOn: %w", err)
	}
	var due core.Date
	if w.DueOn != "" {
		due, err = core.ParseDate(w.DueOn)
		if err != nil {
			return core.Record{}, fmt.Errorf("dueOn: %w", err)
		}
	}
	return core.Record{
		ID:          w.ID,
		Amount:      unitsToMoney(w.Amount),
		Kind:        kind,
		Category:    cat,
		OccurredOn:  occurred,
		DueOn:       due,
		Recurring:   w.Recurring,
		Description: w.Description,
	}, nil
}

func fromSettings(s core.Settings) settingsJSON {
	return settingsJSON{Salary: s.Salary.Units(), Currency: s.Currency}
}

func (w settingsJSON) toSettings() core.Settings {
	s := core.Settings{Salary: unitsToMoney(w.Salary), Currency: w.Currency}
	if s.Currency == "" {
		s.Currency = core.DefaultCurrency
	}
	if s.Salary.Cents < 0 {
		s.Salary = core.Money{}
	}
	return s
}

// unitsToMoney rounds to the nearest cent so a marshal/unmarshal cycle
// reproduces the original cents exactly.
func unitsToMoney(units float64) core.Money {
	return core.Money{Cents: int64(math.Round(units * 100))}
}
