package explain

import (
	"fmt"
	"strings"

	"github.com/arcanaland/aura/internal/card"
)

// Rubric is the fixed set of instructions embedded in every prompt
type Rubric struct {
	Tone         string
	Steps        []string
	Forbidden    []string
	MinSentences int
	MaxSentences int
}

// DefaultRubric keeps replies warm, reflective and free of predictions or advice
var DefaultRubric = Rubric{
	Tone: "warm, gentle and insightful",
	Steps: []string{
		"Acknowledge the question with kindness.",
		"Name the card that was drawn.",
		"Interpret the card's words in plain language.",
		"Bridge that interpretation to the question.",
		"Offer one reflective question the reader can sit with.",
		"Close warmly.",
	},
	Forbidden: []string{
		"predictions about the future",
		"directive advice telling the reader what they must do",
		"medical, legal or financial advice",
	},
	MinSentences: 20,
	MaxSentences: 55,
}

// BuildPrompt assembles the instruction sent to the model
func BuildPrompt(c card.Card, question, language string, r Rubric) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Reply in %s. Explain the following card in a %s way, in the context of my question.\n\n", language, r.Tone)
	fmt.Fprintf(&b, "Card: %q\n", c.Heading())
	fmt.Fprintf(&b, "Card text: %q\n\n", c.Quote)
	fmt.Fprintf(&b, "My question: %q\n\n", strings.TrimSpace(question))

	if len(r.Steps) > 0 {
		b.WriteString("Structure your reply like this:\n")
		for i, step := range r.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		b.WriteString("\n")
	}
	if len(r.Forbidden) > 0 {
		b.WriteString("Never include:\n")
		for _, f := range r.Forbidden {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		b.WriteString("\n")
	}
	if r.MaxSentences > 0 {
		fmt.Fprintf(&b, "Write between %d and %d sentences. Keep it kind and easy to understand.", r.MinSentences, r.MaxSentences)
	}
	return strings.TrimRight(b.String(), "\n")
}
