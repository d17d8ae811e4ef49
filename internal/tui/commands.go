package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arcanaland/aura/internal/auth"
	"github.com/arcanaland/aura/internal/card"
	"github.com/arcanaland/aura/internal/i18n"
	"github.com/arcanaland/aura/internal/session"
	"github.com/arcanaland/aura/internal/store"
)

// effectsCmd turns session effects into commands
func effectsCmd(ctx context.Context, images Images, effects []session.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case session.ScheduleTick:
			cmds = append(cmds, tickCmd(e.Gen, e.After))
		case session.ScheduleReveal:
			cmds = append(cmds, revealCmd(e.Gen, e.After))
		case session.Preload:
			cmds = append(cmds, preloadCmd(ctx, images, e.Gen, e.Card))
		}
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func tickCmd(gen uint64, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func revealCmd(gen uint64, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return revealMsg{gen: gen}
	})
}

func preloadCmd(ctx context.Context, images Images, gen uint64, c card.Card) tea.Cmd {
	return func() tea.Msg {
		_, err := images.Load(ctx, c)
		return imageLoadedMsg{gen: gen, index: c.Index, err: err}
	}
}

func explainCmd(ctx context.Context, e Explainer, req session.Request, msgs *i18n.Bundle) tea.Cmd {
	return func() tea.Msg {
		out := e.Explain(ctx, req.Card, req.Question, msgs)
		return explanationMsg{gen: req.Gen, outcome: out}
	}
}

func saveCmd(ctx context.Context, s store.Store, userID string, gen uint64, snap store.Snapshot) tea.Cmd {
	return func() tea.Msg {
		id, err := s.Save(ctx, userID, snap)
		return savedMsg{gen: gen, id: id, err: err}
	}
}

func listCmd(ctx context.Context, s store.Store, userID string) tea.Cmd {
	return func() tea.Msg {
		cards, err := s.List(ctx, userID)
		return savedListMsg{cards: cards, err: err}
	}
}

func deleteCmd(ctx context.Context, s store.Store, userID string, c store.SavedCard) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: c.ID, title: c.Title, err: s.Delete(ctx, userID, c.ID)}
	}
}

func signInCmd(p auth.Provider, email string) tea.Cmd {
	return func() tea.Msg {
		id, err := p.SignIn(email)
		return signedInMsg{identity: id, err: err}
	}
}

// waitForAuth blocks until the provider reports a sign-in or sign-out, or
// done is closed on shutdown.
func waitForAuth(ch <-chan *auth.Identity, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case id := <-ch:
			return authChangedMsg{identity: id}
		case <-done:
			return nil
		}
	}
}
