// Package explain asks a text-generation model to reflect on a drawn card.
package explain

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/arcanaland/aura/internal/card"
	"github.com/arcanaland/aura/internal/i18n"
)

const (
	// DefaultModel is the model used when none is configured
	DefaultModel = "gemini-2.0-flash-lite"
	// Placeholder is the sample key shipped in example .env files
	Placeholder = "YOUR_API_KEY_HERE"
)

// ErrNotConfigured is reported when no usable API key is set
var ErrNotConfigured = errors.New("explain: API key not configured")

// Generator produces text for a prompt
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Kind classifies an Outcome
type Kind int

const (
	OK Kind = iota
	ConfigMissing
	Failed
)

// Outcome is what the user sees after asking for an explanation
type Outcome struct {
	Text string
	Kind Kind
	Err  error
}

// Explainer turns a card and a question into displayable text
type Explainer struct {
	gen    Generator
	apiKey string
	model  string
	rubric Rubric
	logger *zap.Logger
}

// New creates an Explainer. gen may be nil when no key is configured.
func New(gen Generator, apiKey, model string, logger *zap.Logger) *Explainer {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Explainer{
		gen:    gen,
		apiKey: strings.TrimSpace(apiKey),
		model:  model,
		rubric: DefaultRubric,
		logger: logger,
	}
}

// Configured reports whether a real API key is set
func Configured(apiKey string) bool {
	apiKey = strings.TrimSpace(apiKey)
	return apiKey != "" && apiKey != Placeholder
}

// Model returns the model name requests are sent to
func (e *Explainer) Model() string {
	return e.model
}

// Explain makes at most one request. A missing key is answered locally
// without touching the network; any request error is reported with its
// message appended to the localized failure text.
func (e *Explainer) Explain(ctx context.Context, c card.Card, question string, msgs *i18n.Bundle) Outcome {
	if !Configured(e.apiKey) || e.gen == nil {
		return Outcome{Text: msgs.T("config_missing"), Kind: ConfigMissing, Err: ErrNotConfigured}
	}

	prompt := BuildPrompt(c, question, msgs.LanguageName(), e.rubric)
	e.logger.Debug("requesting explanation",
		zap.String("model", e.model),
		zap.Int("card", c.Index),
		zap.String("locale", msgs.Locale))

	text, err := e.gen.Generate(ctx, e.model, prompt)
	if err != nil {
		e.logger.Warn("explanation failed", zap.Error(err))
		return Outcome{Text: msgs.F("fetch_failed", err.Error()), Kind: Failed, Err: err}
	}
	return Outcome{Text: text, Kind: OK}
}
