package explain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/aura/internal/card"
	"github.com/arcanaland/aura/internal/i18n"
)

type fakeGenerator struct {
	calls  int
	model  string
	prompt string
	text   string
	err    error
}

func (f *fakeGenerator) Generate(_ context.Context, model, prompt string) (string, error) {
	f.calls++
	f.model = model
	f.prompt = prompt
	return f.text, f.err
}

var star = card.Card{Index: 17, Title: "The Star", Quote: "Hope returns quietly."}

func TestExplainWithoutKeyMakesNoCalls(t *testing.T) {
	msgs := i18n.Load("en")
	for _, key := range []string{"", "   ", Placeholder} {
		gen := &fakeGenerator{text: "never"}
		out := New(gen, key, "", nil).Explain(context.Background(), star, "why?", msgs)

		assert.Equal(t, ConfigMissing, out.Kind)
		assert.Equal(t, msgs.T("config_missing"), out.Text)
		assert.ErrorIs(t, out.Err, ErrNotConfigured)
		assert.Zero(t, gen.calls, "key %q", key)
	}
}

func TestExplainWithNilGenerator(t *testing.T) {
	out := New(nil, "real-key", "", nil).Explain(context.Background(), star, "why?", i18n.Load("en"))
	assert.Equal(t, ConfigMissing, out.Kind)
}

func TestExplainFailureTemplate(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	msgs := i18n.Load("en")

	out := New(gen, "key", "", nil).Explain(context.Background(), star, "why?", msgs)

	assert.Equal(t, Failed, out.Kind)
	assert.Equal(t, "Sorry, I had trouble getting an explanation.\n\nError details: quota exceeded", out.Text)
	assert.Equal(t, 1, gen.calls, "no retry")
}

func TestExplainFailureLocalized(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	out := New(gen, "key", "", nil).Explain(context.Background(), star, "¿por qué?", i18n.Load("es"))
	assert.True(t, strings.HasSuffix(out.Text, "Detalles del error: quota exceeded"))
}

func TestExplainSuccess(t *testing.T) {
	gen := &fakeGenerator{text: "A warm reflection."}
	e := New(gen, "key", "", nil)

	out := e.Explain(context.Background(), star, "What should I notice?", i18n.Load("zh-TW"))

	require.Equal(t, OK, out.Kind)
	assert.Equal(t, "A warm reflection.", out.Text)
	assert.NoError(t, out.Err)
	assert.Equal(t, DefaultModel, gen.model)
	assert.Contains(t, gen.prompt, "Reply in Traditional Chinese.")
	assert.Contains(t, gen.prompt, `"The Star"`)
	assert.Contains(t, gen.prompt, "What should I notice?")
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(star, "  Will things improve?  ", "English", DefaultRubric)

	assert.Contains(t, p, "Reply in English.")
	assert.Contains(t, p, `Card: "The Star"`)
	assert.Contains(t, p, `Card text: "Hope returns quietly."`)
	assert.Contains(t, p, `My question: "Will things improve?"`)
	assert.Contains(t, p, "1. Acknowledge the question with kindness.")
	assert.Contains(t, p, "6. Close warmly.")
	assert.Contains(t, p, "- medical, legal or financial advice")
	assert.Contains(t, p, "between 20 and 55 sentences")
	assert.Equal(t, p, BuildPrompt(star, "Will things improve?", "English", DefaultRubric), "pure function")
}

func TestBuildPromptLegacyCard(t *testing.T) {
	p := BuildPrompt(card.Card{Category: "Courage", Quote: "Stand tall."}, "q", "Spanish", Rubric{Tone: "kind"})
	assert.Contains(t, p, `Card: "Courage"`)
	assert.NotContains(t, p, "Never include")
}

func TestConfigured(t *testing.T) {
	assert.False(t, Configured(""))
	assert.False(t, Configured(Placeholder))
	assert.True(t, Configured("abc"))
}

func TestNewGeminiGeneratorRequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), Placeholder)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
