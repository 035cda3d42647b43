package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"sarhisob/internal/core"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("Sahifa topilmadi").Write(w)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	data := struct {
		Today      string
		Kinds      []core.Kind
		Categories []core.Category
	}{
		Today:      now.Format("2006-01-02"),
		Kinds:      core.Kinds,
		Categories: core.Categories,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCreateRecord adds a record from the add form. An empty amount is a
// silent no-op: the form can be submitted blank without an error banner.
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	amountStr := strings.TrimSpace(r.Form.Get("amount"))
	if amountStr == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		UnprocessableEntityError("Summa noto'g'ri").Write(w)
		return
	}

	kind, err := core.ParseKind(r.Form.Get("kind"))
	if err != nil {
		UnprocessableEntityError("Yozuv turi noto'g'ri").Write(w)
		return
	}
	category, err := core.ParseCategory(r.Form.Get("category"))
	if err != nil {
		UnprocessableEntityError("Kategoriya noto'g'ri").Write(w)
		return
	}

	occurredOn := core.DateOf(time.Now())
	if v := strings.TrimSpace(r.Form.Get("occurredOn")); v != "" {
		if d, err := core.ParseDate(v); err == nil {
			occurredOn = d
		}
	}

	var dueOn core.Date
	if v := strings.TrimSpace(r.Form.Get("dueOn")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			UnprocessableEntityError("Muddat sanasi noto'g'ri").Write(w)
			return
		}
		dueOn = d
	}

	rec := core.Record{
		Amount:      core.Money{Cents: cents},
		Kind:        kind,
		Category:    category,
		OccurredOn:  occurredOn,
		DueOn:       dueOn,
		Recurring:   r.Form.Get("recurring") == "on" || r.Form.Get("recurring") == "true",
		Description: sanitizeInput(r.Form.Get("description")),
	}

	id, err := s.ledger.AddRecord(r.Context(), rec)
	if err != nil {
		if errors.Is(err, core.ErrUnexpectedDue) || errors.Is(err, core.ErrInvalidAmount) || errors.Is(err, core.ErrMissingDate) {
			UnprocessableEntityError("Ma'lumotlar noto'g'ri: " + err.Error()).Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Record append error", "error", err, "kind", string(rec.Kind), "amount_cents", rec.Amount.Cents)
		InternalServerError("Saqlashda xatolik").Write(w)
		return
	}

	s.invalidateOverview()

	NewHTMXResponse().
		TriggerRecordCreated(id).
		TriggerOverviewRefresh().
		TriggerFormReset().
		BodyHTML(`<div class="success">Yozuv qo'shildi: ` +
			template.HTMLEscapeString(rec.Amount.Format()) + ` (` +
			template.HTMLEscapeString(string(rec.Kind)) + `)</div>`).
		Write(w)
}

// handleDeleteRecord removes a record by ID from the /records/{id} path.
// POST is accepted alongside DELETE for plain-form clients.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/records/")
	if id == "" || strings.Contains(id, "/") {
		BadRequestError("Yozuv identifikatori yo'q").Write(w)
		return
	}

	if err := s.ledger.DeleteRecord(r.Context(), id); err != nil {
		slog.WarnContext(r.Context(), "Record delete failed", "id", id, "error", err)
		NotFoundError("Yozuv topilmadi").Write(w)
		return
	}

	s.invalidateOverview()

	NewHTMXResponse().
		TriggerRecordDeleted(id).
		TriggerOverviewRefresh().
		BodyHTML(``).
		Write(w)
}

// handleSaveSettings replaces the settings record.
func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	salary := core.Money{}
	if v := strings.TrimSpace(r.Form.Get("salary")); v != "" {
		cents, err := core.ParseDecimalToCents(v)
		if err != nil {
			UnprocessableEntityError("Oylik summasi noto'g'ri").Write(w)
			return
		}
		salary = core.Money{Cents: cents}
	}

	currency := sanitizeInput(r.Form.Get("currency"))
	if currency == "" {
		currency = core.DefaultCurrency
	}

	settings := core.Settings{Salary: salary, Currency: currency}
	if err := s.ledger.UpdateSettings(r.Context(), settings); err != nil {
		slog.ErrorContext(r.Context(), "Settings save error", "error", err)
		InternalServerError("Sozlamalarni saqlashda xatolik").Write(w)
		return
	}

	s.invalidateOverview()

	NewHTMXResponse().
		TriggerSettingsSaved().
		TriggerOverviewRefresh().
		BodyHTML(`<div class="success">Sozlamalar saqlandi</div>`).
		Write(w)
}

// handleClearAll wipes every record and resets settings to defaults.
func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	if err := s.ledger.ClearAll(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Clear all error", "error", err)
		InternalServerError("Tozalashda xatolik").Write(w)
		return
	}

	s.invalidateOverview()

	NewHTMXResponse().
		TriggerStoreCleared().
		TriggerOverviewRefresh().
		BodyHTML(`<div class="success">Barcha ma'lumotlar o'chirildi</div>`).
		Write(w)
}

// handleAdvice renders the advice partial. The gateway never fails; a
// missing key or API error comes back as a readable fallback string.
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	records, err := s.ledger.Records(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List records for advice failed", "error", err)
		InternalServerError("Ma'lumotlarni o'qishda xatolik").Write(w)
		return
	}
	settings, err := s.ledger.Settings(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Load settings for advice failed", "error", err)
		InternalServerError("Sozlamalarni o'qishda xatolik").Write(w)
		return
	}

	cctx, cancel := contextWithAdviceTimeout(r)
	defer cancel()
	text := s.advisor.Advise(cctx, records, settings)

	NewHTMXResponse().
		BodyHTML(`<div class="advice">` + template.HTMLEscapeString(text) + `</div>`).
		Write(w)
}
