// Package tui is the interactive draw: a bubbletea program around a
// session.Session, with sign-in, saved cards and info pages.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/arcanaland/aura/internal/auth"
	"github.com/arcanaland/aura/internal/card"
	"github.com/arcanaland/aura/internal/catalog"
	"github.com/arcanaland/aura/internal/explain"
	"github.com/arcanaland/aura/internal/fan"
	"github.com/arcanaland/aura/internal/i18n"
	"github.com/arcanaland/aura/internal/locale"
	"github.com/arcanaland/aura/internal/render"
	"github.com/arcanaland/aura/internal/session"
	"github.com/arcanaland/aura/internal/store"
)

// Images loads and caches card artwork, e.g. a fan.Preloader
type Images interface {
	Loaded(index int) bool
	Art(index int) (string, bool)
	Load(ctx context.Context, c card.Card) (string, error)
	Reset()
}

// CatalogSource provides the cards for a locale
type CatalogSource interface {
	Load(locale string) (*catalog.Catalog, error)
}

// Explainer produces the reflection shown under a revealed card
type Explainer interface {
	Explain(ctx context.Context, c card.Card, question string, msgs *i18n.Bundle) explain.Outcome
}

// Options wires the model's collaborators. Store and Auth may be nil, in
// which case saving reports that it is unavailable.
type Options struct {
	Context   context.Context
	Catalogs  CatalogSource
	Locale    string
	Session   session.Config
	Images    Images
	Explainer Explainer
	Store     store.Store
	Auth      auth.Provider
	Logger    *zap.Logger
	Location  *time.Location
	Now       func() time.Time

	// OnLocale is called after the user switches language
	OnLocale func(locale string) error
}

type screen int

const (
	screenDraw screen = iota
	screenSignIn
	screenSaved
	screenInfo
)

// Model is the bubbletea model for an interactive draw
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	session   *session.Session
	catalogs  CatalogSource
	cards     *catalog.Catalog
	msgs      *i18n.Bundle
	images    Images
	explainer Explainer
	store     store.Store
	auth      auth.Provider
	log       *zap.Logger
	loc       *time.Location
	now       func() time.Time
	onLocale  func(string) error

	screen   screen
	prev     screen
	cursor   int
	question textinput.Model
	email    textinput.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	reply    string
	notice   string

	cancelExplain context.CancelFunc
	saving        bool
	pendingSave   bool

	user      *auth.Identity
	authCh    chan *auth.Identity
	stopWatch func()
	signInErr string

	savedCards  []store.SavedCard
	savedLoaded bool
	savedCursor int
	confirm     *store.SavedCard

	infoPage int

	width  int
	height int
}

// New builds the model and deals the first fan
func New(opts Options) (Model, error) {
	if opts.Catalogs == nil {
		return Model{}, errors.New("tui: a catalog source is required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	images := opts.Images
	if images == nil {
		images = fan.NewPreloader(nil, render.ArtWidth, render.ArtHeight)
	}
	explainer := opts.Explainer
	if explainer == nil {
		explainer = explain.New(nil, "", "", log)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}

	cat, err := opts.Catalogs.Load(opts.Locale)
	if err != nil {
		return Model{}, fmt.Errorf("loading catalog: %w", err)
	}
	msgs := i18n.Load(opts.Locale)

	cfg := opts.Session
	cfg.Images = images

	q := textinput.New()
	q.Placeholder = msgs.T("question_placeholder")
	q.Prompt = "│ "
	q.CharLimit = 500
	q.Width = 60

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "│ "
	email.CharLimit = 254
	email.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = CursorStyle

	ctx, cancel := context.WithCancel(parent)
	m := Model{
		ctx:       ctx,
		cancel:    cancel,
		session:   session.New(cat.Cards, cfg),
		catalogs:  opts.Catalogs,
		cards:     cat,
		msgs:      msgs,
		images:    images,
		explainer: explainer,
		store:     opts.Store,
		auth:      opts.Auth,
		log:       log,
		loc:       loc,
		now:       now,
		onLocale:  opts.OnLocale,
		question:  q,
		email:     email,
		spinner:   sp,
	}
	m.renderer = newRenderer(m.contentWidth())

	if opts.Auth != nil {
		id, err := opts.Auth.Current()
		switch {
		case err == nil:
			m.user = id
		case !errors.Is(err, auth.ErrNotSignedIn):
			log.Warn("reading session failed", zap.Error(err))
		}

		ch := make(chan *auth.Identity, 4)
		m.authCh = ch
		m.stopWatch = opts.Auth.Watch(func(id *auth.Identity) {
			select {
			case ch <- id:
			default:
			}
		})
	}
	return m, nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.effects(m.session.Init())}
	if m.authCh != nil {
		cmds = append(cmds, waitForAuth(m.authCh, m.ctx.Done()))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tickMsg:
		return m, m.effects(m.session.Tick(msg.gen))

	case revealMsg:
		return m, m.effects(m.session.RevealDue(msg.gen))

	case imageLoadedMsg:
		return m.handleImageLoaded(msg)

	case explanationMsg:
		return m.handleExplanation(msg)

	case savedMsg:
		return m.handleSaved(msg)

	case savedListMsg:
		return m.handleSavedList(msg)

	case deletedMsg:
		return m.handleDeleted(msg)

	case signedInMsg:
		return m.handleSignedIn(msg)

	case authChangedMsg:
		return m.handleAuthChanged(msg)

	case spinner.TickMsg:
		if !m.session.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// Close releases the session and any in-flight work. Safe to call after quit.
func (m *Model) Close() {
	m.cancelInFlight()
	m.session.Close()
	if m.stopWatch != nil {
		m.stopWatch()
		m.stopWatch = nil
	}
	m.cancel()
}

func (m Model) effects(effects []session.Effect) tea.Cmd {
	return effectsCmd(m.ctx, m.images, effects)
}

func (m *Model) cancelInFlight() {
	if m.cancelExplain != nil {
		m.cancelExplain()
		m.cancelExplain = nil
	}
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.question.Width = m.contentWidth() - 4
	m.renderer = newRenderer(m.contentWidth())
	if resp := m.session.Response(); resp != "" {
		m.reply = m.renderReply(resp)
	}
	return m, nil
}

func (m Model) handleImageLoaded(msg imageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("loading card image failed", zap.Int("card", msg.index), zap.Error(msg.err))
	}
	return m, m.effects(m.session.ImageLoaded(msg.gen, msg.index, msg.err))
}

func (m Model) handleExplanation(msg explanationMsg) (tea.Model, tea.Cmd) {
	if !m.session.ApplyExplanation(msg.gen, msg.outcome.Text) {
		m.log.Debug("dropping stale explanation", zap.Uint64("gen", msg.gen))
		return m, nil
	}
	m.cancelInFlight()
	if msg.outcome.Err != nil {
		m.log.Warn("explanation unavailable", zap.Int("kind", int(msg.outcome.Kind)), zap.Error(msg.outcome.Err))
	}
	m.reply = m.renderReply(msg.outcome.Text)
	return m, nil
}

// handleSaved keeps the save control enabled on failure so the user can retry
func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.session.Gen() {
		// a save from an earlier draw; the current one may have its own in flight
		if msg.err != nil {
			m.log.Warn("saving card from an earlier draw failed", zap.Error(msg.err))
		} else {
			m.savedLoaded = false
		}
		return m, nil
	}
	m.saving = false
	if msg.err != nil {
		m.log.Error("saving card failed", zap.Error(msg.err))
		m.notice = m.msgs.T("save_failed")
		return m, nil
	}
	m.log.Info("card saved", zap.String("id", msg.id))
	m.session.MarkSaved(msg.gen)
	m.savedLoaded = false
	return m, nil
}

func (m Model) handleSavedList(msg savedListMsg) (tea.Model, tea.Cmd) {
	m.savedLoaded = true
	if msg.err != nil {
		m.log.Error("listing saved cards failed", zap.Error(msg.err))
		m.notice = m.msgs.T("store_unavailable")
		m.savedCards = nil
		return m, nil
	}
	m.savedCards = msg.cards
	m.clampSavedCursor()
	return m, nil
}

// handleDeleted reloads the list when the optimistic removal turns out wrong
func (m Model) handleDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error("deleting saved card failed", zap.String("id", msg.id), zap.Error(msg.err))
		if m.user == nil || m.store == nil {
			return m, nil
		}
		return m, listCmd(m.ctx, m.store, m.user.UID)
	}
	m.notice = m.msgs.F("deleted", msg.title)
	return m, nil
}

func (m Model) handleSignedIn(msg signedInMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("sign-in failed", zap.Error(msg.err))
		m.signInErr = m.msgs.F("sign_in_failed", msg.err.Error())
		return m, nil
	}
	m.user = msg.identity
	m.signInErr = ""
	m.email.Reset()
	m.email.Blur()
	m.screen = m.prev

	if m.pendingSave {
		m.pendingSave = false
		return m.save()
	}
	if m.screen == screenSaved {
		return m.openSaved()
	}
	return m, nil
}

func (m Model) handleAuthChanged(msg authChangedMsg) (tea.Model, tea.Cmd) {
	changed := (m.user == nil) != (msg.identity == nil) ||
		(m.user != nil && msg.identity != nil && m.user.UID != msg.identity.UID)
	m.user = msg.identity
	cmd := waitForAuth(m.authCh, m.ctx.Done())
	if !changed {
		return m, cmd
	}

	m.savedCards = nil
	m.savedLoaded = false
	m.confirm = nil
	if m.screen == screenSaved && m.user != nil && m.store != nil {
		return m, tea.Batch(cmd, listCmd(m.ctx, m.store, m.user.UID))
	}
	return m, cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	m.notice = ""

	switch m.screen {
	case screenSignIn:
		return m.handleSignInKey(msg)
	case screenSaved:
		return m.handleSavedKey(msg)
	case screenInfo:
		return m.handleInfoKey(msg)
	}
	if m.question.Focused() {
		return m.handleQuestionKey(msg)
	}
	return m.handleDrawKey(msg)
}

func (m Model) handleDrawKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "?":
		m.prev = screenDraw
		m.screen = screenInfo
		m.infoPage = 0
		return m, nil
	case "v":
		m.prev = screenDraw
		return m.openSaved()
	case "l":
		return m.switchLocale()
	case "r":
		if m.session.Phase() != session.Intro {
			return m.restart()
		}
	}

	switch m.session.Phase() {
	case session.Intro:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace {
			return m, m.effects(m.session.Start())
		}

	case session.ChoosingCard:
		n := m.session.Fan().Len()
		if n == 0 {
			return m, nil
		}
		switch msg.String() {
		case "left":
			m.cursor = (m.cursor - 1 + n) % n
		case "right":
			m.cursor = (m.cursor + 1) % n
		case "enter", " ":
			return m, m.effects(m.session.Tap(m.cursor))
		}

	case session.Revealed:
		switch msg.String() {
		case "e", "tab":
			if m.session.Loading() {
				return m, nil
			}
			m.question.SetValue(m.session.Question())
			cmd := m.question.Focus()
			return m, cmd
		case "s":
			return m.save()
		}
	}
	return m, nil
}

func (m Model) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.question.Blur()
		return m, nil

	case tea.KeyEnter:
		m.session.SetQuestion(m.question.Value())
		req, ok := m.session.BeginExplain()
		if !ok {
			return m, nil
		}
		m.question.Blur()
		m.reply = ""
		ctx, cancel := context.WithCancel(m.ctx)
		m.cancelExplain = cancel
		return m, tea.Batch(explainCmd(ctx, m.explainer, req, m.msgs), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.question, cmd = m.question.Update(msg)
	return m, cmd
}

func (m Model) handleSignInKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.pendingSave = false
		m.signInErr = ""
		m.email.Blur()
		m.screen = m.prev
		return m, nil

	case tea.KeyEnter:
		email := strings.TrimSpace(m.email.Value())
		if email == "" || m.auth == nil {
			return m, nil
		}
		return m, signInCmd(m.auth, email)
	}

	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	return m, cmd
}

func (m Model) handleSavedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		target := *m.confirm
		m.confirm = nil
		if msg.String() != "y" && msg.String() != "Y" {
			return m, nil
		}
		if m.user == nil || m.store == nil {
			return m, nil
		}
		m.savedCards = store.Remove(m.savedCards, target.ID)
		m.clampSavedCursor()
		return m, deleteCmd(m.ctx, m.store, m.user.UID, target)
	}

	switch msg.String() {
	case "esc", "q", "v":
		m.screen = screenDraw
	case "up", "k":
		if m.savedCursor > 0 {
			m.savedCursor--
		}
	case "down", "j":
		m.savedCursor++
		m.clampSavedCursor()
	case "d", "delete":
		if c, ok := m.selectedSaved(); ok {
			m.confirm = &c
		}
	case "enter":
		if m.user == nil && m.auth != nil {
			return m.openSignIn(screenSaved)
		}
	}
	return m, nil
}

func (m Model) handleInfoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.screen = m.prev
	case "tab", "right":
		m.infoPage = (m.infoPage + 1) % len(infoPages)
	case "shift+tab", "left":
		m.infoPage = (m.infoPage + len(infoPages) - 1) % len(infoPages)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	m.cancelInFlight()
	m.cursor = 0
	m.reply = ""
	m.saving = false
	m.pendingSave = false
	m.question.Reset()
	m.question.Blur()
	return m, m.effects(m.session.Restart())
}

// save writes the revealed card, asking the user to sign in first if needed
func (m Model) save() (tea.Model, tea.Cmd) {
	if !m.session.CanSave() || m.saving {
		return m, nil
	}
	if m.store == nil || m.auth == nil {
		m.notice = m.msgs.T("store_unavailable")
		return m, nil
	}
	if m.user == nil {
		m.pendingSave = true
		m.notice = m.msgs.T("sign_in_first")
		return m.openSignIn(screenDraw)
	}

	snap, ok := m.session.Snapshot()
	if !ok {
		return m, nil
	}
	m.saving = true
	doc := store.SnapshotOf(snap.Card, snap.Question, snap.Reply, m.now())
	return m, saveCmd(m.ctx, m.store, m.user.UID, snap.Gen, doc)
}

func (m Model) openSignIn(from screen) (tea.Model, tea.Cmd) {
	m.prev = from
	m.screen = screenSignIn
	m.signInErr = ""
	cmd := m.email.Focus()
	return m, cmd
}

func (m Model) openSaved() (tea.Model, tea.Cmd) {
	m.screen = screenSaved
	m.confirm = nil
	m.savedCursor = 0
	if m.user == nil || m.store == nil {
		return m, nil
	}
	m.savedLoaded = false
	return m, listCmd(m.ctx, m.store, m.user.UID)
}

// switchLocale moves to the next supported language and deals a new fan
// from that language's catalog
func (m Model) switchLocale() (tea.Model, tea.Cmd) {
	next := nextLocale(m.msgs.Locale)
	cat, err := m.catalogs.Load(next)
	if err != nil {
		m.log.Error("loading catalog failed", zap.String("locale", next), zap.Error(err))
		return m, nil
	}

	m.cancelInFlight()
	m.images.Reset()
	m.cards = cat
	m.msgs = i18n.Load(next)
	m.question.Placeholder = m.msgs.T("question_placeholder")
	m.question.Reset()
	m.question.Blur()
	m.reply = ""
	m.cursor = 0
	m.saving = false
	m.pendingSave = false
	m.savedLoaded = false

	if m.onLocale != nil {
		if err := m.onLocale(next); err != nil {
			m.log.Warn("persisting locale failed", zap.Error(err))
		}
	}
	m.log.Info("locale changed", zap.String("locale", next), zap.Int("cards", cat.Len()))
	return m, m.effects(m.session.SetCards(cat.Cards))
}

func nextLocale(current string) string {
	current = locale.Alias(current)
	for i, l := range locale.Supported {
		if l == current {
			return locale.Supported[(i+1)%len(locale.Supported)]
		}
	}
	return locale.Default
}

// savedOrder is the saved cards in display order, newest day first
func (m Model) savedOrder() []store.SavedCard {
	var out []store.SavedCard
	for _, g := range store.Group(m.savedCards, m.msgs.DateLayout(), m.loc) {
		out = append(out, g.Cards...)
	}
	return out
}

func (m Model) selectedSaved() (store.SavedCard, bool) {
	order := m.savedOrder()
	if m.savedCursor < 0 || m.savedCursor >= len(order) {
		return store.SavedCard{}, false
	}
	return order[m.savedCursor], true
}

func (m *Model) clampSavedCursor() {
	if m.savedCursor >= len(m.savedCards) {
		m.savedCursor = len(m.savedCards) - 1
	}
	if m.savedCursor < 0 {
		m.savedCursor = 0
	}
}

func (m Model) contentWidth() int {
	if m.width == 0 {
		return 76
	}
	return min(max(m.width-8, 30), 100)
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

func (m Model) renderReply(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}
