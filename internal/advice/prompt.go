package advice

import (
	"encoding/json"
	"fmt"

	"sarhisob/internal/core"
)

// promptRecord is the compact JSON shape embedded in the prompt.
type promptRecord struct {
	Amount      float64 `json:"amount"`
	Kind        string  `json:"kind"`
	Category    string  `json:"category"`
	OccurredOn  string  `json:"occurredOn"`
	DueOn       string  `json:"dueOn,omitempty"`
	Description string  `json:"description,omitempty"`
}

// buildPrompt renders the Uzbek advisor prompt with the most recent
// records. Records are expected newest first; at most maxRecords are sent.
func buildPrompt(records []core.Record, settings core.Settings, maxRecords int) (string, error) {
	if maxRecords <= 0 {
		maxRecords = 15
	}
	if len(records) > maxRecords {
		records = records[:maxRecords]
	}

	compact := make([]promptRecord, 0, len(records))
	for _, r := range records {
		pr := promptRecord{
			Amount:      r.Amount.Units(),
			Kind:        string(r.Kind),
			Category:    string(r.Category),
			OccurredOn:  r.OccurredOn.String(),
			Description: r.Description,
		}
		if !r.DueOn.IsZero() {
			pr.DueOn = r.DueOn.String()
		}
		compact = append(compact, pr)
	}

	data, err := json.Marshal(compact)
	if err != nil {
		return "", fmt.Errorf("marshal records: %w", err)
	}

	return fmt.Sprintf(`Siz moliya maslahatchisisiz.
Oylik daromad: %s %s
Xarajatlar: %s

Tahlil qiling:
1. Holat (qisqa).
2. Kredit/Qarzlarni yopish rejasi.
3. 2 ta tejash yo'li.

Javob o'zbek tilida, do'stona va 400 belgidan oshmasin.`,
		settings.Salary.Format(), settings.Currency, data), nil
}
