// Package advice asks the Gemini API for a short spending review in Uzbek.
// The gateway never returns an error to callers: when the key is missing or
// the API misbehaves it degrades to a canned Uzbek message, so the rest of
// the page still renders.
package advice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"sarhisob/internal/core"

	genlang "google.golang.org/api/generativelanguage/v1beta"
	goption "google.golang.org/api/option"
)

const (
	// FallbackMissingKey is shown when no API key is configured.
	FallbackMissingKey = "GEMINI_API_KEY topilmadi. Iltimos kalitni o'rnating. 🔑"
	// FallbackUnavailable is shown on transport or API errors.
	FallbackUnavailable = "AI hozirda band yoki API kalitda xatolik bor. 🌐"
)

// contentGenerator is the slice of the Generative Language API the gateway
// uses. Tests substitute a fake.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, req *genlang.GenerateContentRequest) (*genlang.GenerateContentResponse, error)
}

type apiGenerator struct {
	svc *genlang.Service
}

func (g *apiGenerator) GenerateContent(ctx context.Context, model string, req *genlang.GenerateContentRequest) (*genlang.GenerateContentResponse, error) {
	return g.svc.Models.GenerateContent(model, req).Context(ctx).Do()
}

type Gateway struct {
	gen        contentGenerator
	model      string
	maxRecords int
}

// New creates an advice gateway. An empty apiKey is allowed; the gateway
// then answers every request with FallbackMissingKey.
func New(ctx context.Context, apiKey, model string, maxRecords int) (*Gateway, error) {
	g := &Gateway{model: normalizeModel(model), maxRecords: maxRecords}

	if strings.TrimSpace(apiKey) == "" {
		slog.WarnContext(ctx, "GEMINI_API_KEY not set, advice disabled")
		return g, nil
	}

	svc, err := genlang.NewService(ctx, goption.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("generative language service: %w", err)
	}
	g.gen = &apiGenerator{svc: svc}
	return g, nil
}

// Advise builds the prompt from the most recent records and asks the model.
func (g *Gateway) Advise(ctx context.Context, records []core.Record, settings core.Settings) string {
	if g.gen == nil {
		return FallbackMissingKey
	}

	prompt, err := buildPrompt(records, settings, g.maxRecords)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build advice prompt", "error", err)
		return FallbackUnavailable
	}

	req := &genlang.GenerateContentRequest{
		Contents: []*genlang.Content{{
			Parts: []*genlang.Part{{Text: prompt}},
		}},
	}

	resp, err := g.gen.GenerateContent(ctx, g.model, req)
	if err != nil {
		slog.ErrorContext(ctx, "Advice request failed", "model", g.model, "error", err)
		return FallbackUnavailable
	}

	text := firstCandidateText(resp)
	if text == "" {
		slog.WarnContext(ctx, "Advice response had no text", "model", g.model)
		return FallbackUnavailable
	}
	return text
}

func firstCandidateText(resp *genlang.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if p != nil && p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}

// normalizeModel accepts both "gemini-..." and "models/gemini-..." forms.
func normalizeModel(model string) string {
	model = strings.TrimSpace(model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if !strings.HasPrefix(model, "models/") {
		model = "models/" + model
	}
	return model
}
