package http

import (
	"log/slog"
	"net/http"

	"sarhisob/internal/core"
)

// View models passed to the partial templates.

type reminderView struct {
	Description string
	Kind        string
	Amount      string
	DueOn       string
	DueIn       int
}

type overviewView struct {
	Currency      string
	DailyLimit    string
	Balance       string
	Negative      bool
	TotalSpent    string
	FixedCosts    string
	Income        string
	RemainingDays int
	Reminders     []reminderView
}

type recordView struct {
	ID          string
	Date        string
	Kind        string
	Category    string
	Amount      string
	Description string
	DueOn       string
	Recurring   bool
}

type categoryRow struct {
	Name   string
	Amount string
	Width  int
}

type analyticsView struct {
	Total string
	Rows  []categoryRow
}

type settingsView struct {
	Salary   string
	Currency string
}

func (s *Server) renderPartial(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "template", name)
		_, _ = w.Write([]byte(`<div class="placeholder">Shablon yuklanmadi</div>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", name)
		_, _ = w.Write([]byte(`<div class="placeholder">Ko'rsatishda xatolik</div>`))
	}
}

// handleOverviewPartial renders the daily limit, balance, and reminders.
func (s *Server) handleOverviewPartial(w http.ResponseWriter, r *http.Request) {
	ov, err := s.getOverview(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Overview error", "error", err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<div class="placeholder">Umumiy ko'rinishni yuklashda xatolik</div>`))
		return
	}

	view := overviewView{
		Currency:      ov.Settings.Currency,
		DailyLimit:    formatAmount(ov.Summary.DailyLimit, ov.Settings.Currency),
		Balance:       formatAmount(ov.Summary.Balance, ov.Settings.Currency),
		Negative:      ov.Summary.Balance.Cents < 0,
		TotalSpent:    formatAmount(ov.Summary.TotalSpent, ov.Settings.Currency),
		FixedCosts:    formatAmount(ov.Summary.FixedCosts, ov.Settings.Currency),
		Income:        formatAmount(ov.Summary.Income, ov.Settings.Currency),
		RemainingDays: ov.Summary.RemainingDays,
	}
	for _, rem := range ov.Reminders {
		view.Reminders = append(view.Reminders, reminderView{
			Description: rem.Record.Description,
			Kind:        kindLabel(rem.Record.Kind),
			Amount:      formatAmount(rem.Record.Amount, ov.Settings.Currency),
			DueOn:       rem.Record.DueOn.String(),
			DueIn:       rem.DueIn,
		})
	}

	s.renderPartial(w, r, "overview.html", view)
}

// handleHistoryPartial renders the full record list, newest first.
func (s *Server) handleHistoryPartial(w http.ResponseWriter, r *http.Request) {
	ov, err := s.getOverview(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "History error", "error", err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<div class="placeholder">Tarixni yuklashda xatolik</div>`))
		return
	}

	var view struct {
		Records []recordView
	}
	for _, rec := range ov.Records {
		view.Records = append(view.Records, recordView{
			ID:          rec.ID,
			Date:        rec.OccurredOn.String(),
			Kind:        kindLabel(rec.Kind),
			Category:    string(rec.Category),
			Amount:      formatAmount(rec.Amount, ov.Settings.Currency),
			Description: rec.Description,
			DueOn:       rec.DueOn.String(),
			Recurring:   rec.Recurring,
		})
	}

	s.renderPartial(w, r, "history.html", view)
}

// handleAnalyticsPartial renders the category breakdown with progress bars
// scaled against the largest category.
func (s *Server) handleAnalyticsPartial(w http.ResponseWriter, r *http.Request) {
	ov, err := s.getOverview(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Analytics error", "error", err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<div class="placeholder">Tahlilni yuklashda xatolik</div>`))
		return
	}

	var maxCents int64
	for _, row := range ov.Summary.ByCategory {
		if row.Amount.Cents > maxCents {
			maxCents = row.Amount.Cents
		}
	}

	view := analyticsView{Total: formatAmount(ov.Summary.TotalSpent, ov.Settings.Currency)}
	for _, row := range ov.Summary.ByCategory {
		width := 0
		if maxCents > 0 && row.Amount.Cents > 0 {
			width = int((row.Amount.Cents*100 + maxCents/2) / maxCents) // rounded percent
			if width > 0 && width < 2 {                                 // ensure visibility for very small values
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		view.Rows = append(view.Rows, categoryRow{
			Name:   string(row.Category),
			Amount: formatAmount(row.Amount, ov.Settings.Currency),
			Width:  width,
		})
	}

	s.renderPartial(w, r, "analytics.html", view)
}

// handleSettingsPartial renders the settings form with current values.
func (s *Server) handleSettingsPartial(w http.ResponseWriter, r *http.Request) {
	settings, err := s.ledger.Settings(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Settings load error", "error", err)
		settings = core.DefaultSettings()
	}

	salary := ""
	if settings.Salary.Cents > 0 {
		salary = settings.Salary.Format()
	}

	s.renderPartial(w, r, "settings.html", settingsView{
		Salary:   salary,
		Currency: settings.Currency,
	})
}
