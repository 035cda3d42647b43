package http

import (
	"context"
	"net/http"
	"time"

	"sarhisob/internal/core"
)

// adviceTimeout bounds the upstream Gemini call so the partial never hangs.
const adviceTimeout = 20 * time.Second

func contextWithAdviceTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), adviceTimeout)
}

// kindLabels maps record kinds to the Uzbek labels used in the UI.
var kindLabels = map[core.Kind]string{
	core.Expense: "Xarajat",
	core.Income:  "Daromad",
	core.Credit:  "Kredit",
	core.Debt:    "Qarz",
	core.Utility: "Kommunal",
}

func kindLabel(k core.Kind) string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return string(k)
}

// formatAmount renders a money value with its currency label, e.g.
// "1 000 000 so'm".
func formatAmount(m core.Money, currency string) string {
	return m.Format() + " " + currency
}
