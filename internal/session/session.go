// Package session implements the draw lifecycle: countdown, choosing a card
// from the fan, the reveal and the question/explanation that follows.
//
// A Session never starts timers or goroutines itself. Each transition returns
// the effects the caller must schedule, tagged with the session generation.
// Results delivered with an older generation are dropped, which is how
// restarts and teardown cancel pending timers and late explanations.
package session

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/arcanaland/aura/internal/card"
	"github.com/arcanaland/aura/internal/fan"
)

// Phase is a step of the draw lifecycle
type Phase int

const (
	Intro Phase = iota
	Countdown
	ChoosingCard
	Revealed
	Closed
)

func (p Phase) String() string {
	switch p {
	case Intro:
		return "intro"
	case Countdown:
		return "countdown"
	case ChoosingCard:
		return "choosing"
	case Revealed:
		return "revealed"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Defaults
const (
	DefaultCountdown    = 10
	DefaultTickInterval = time.Second
	DefaultRevealDelay  = time.Second
)

// Effect is work the caller must schedule on behalf of the session
type Effect interface {
	effect()
}

// ScheduleTick asks for Tick(Gen) after the delay
type ScheduleTick struct {
	Gen   uint64
	After time.Duration
}

// ScheduleReveal asks for RevealDue(Gen) after the flip animation
type ScheduleReveal struct {
	Gen   uint64
	After time.Duration
}

// Preload asks for the card's image to be loaded, answered by ImageLoaded
type Preload struct {
	Gen  uint64
	Card card.Card
}

func (ScheduleTick) effect()   {}
func (ScheduleReveal) effect() {}
func (Preload) effect()        {}

// Images reports artwork that is already loaded, e.g. a fan.Preloader
type Images interface {
	Loaded(index int) bool
}

// Config controls timing and fan size. A zero Countdown means the default;
// a negative one skips the countdown.
type Config struct {
	Countdown    int
	TickInterval time.Duration
	RevealDelay  time.Duration
	FanCount     int
	SkipIntro    bool
	Images       Images
	Rand         *rand.Rand
}

func (c Config) withDefaults() Config {
	switch {
	case c.Countdown == 0:
		c.Countdown = DefaultCountdown
	case c.Countdown < 0:
		c.Countdown = 0
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.RevealDelay <= 0 {
		c.RevealDelay = DefaultRevealDelay
	}
	if c.FanCount <= 0 {
		c.FanCount = fan.DefaultCount
	}
	return c
}

// Request is an explanation request bound to the generation it was issued in
type Request struct {
	Gen      uint64
	Card     card.Card
	Question string
}

// Snapshot is what gets persisted when a revealed card is saved
type Snapshot struct {
	Gen      uint64
	Card     card.Card
	Question string
	Reply    string
}

// Session is the state of one draw. It is not safe for concurrent use; the
// owner feeds it events from a single goroutine.
type Session struct {
	cfg   Config
	cards []card.Card

	gen          uint64
	phase        Phase
	countdown    int
	showSubtitle bool

	fan        fan.Fan
	tapped     int
	preloading int
	flipped    int
	ready      map[int]bool
	pending    map[int]bool
	imageErr   error

	selected *card.Card
	question string
	response string
	loading  bool
	saved    bool
}

// New creates a session over the given catalog cards, waiting in Intro
func New(cards []card.Card, cfg Config) *Session {
	s := &Session{
		cfg:   cfg.withDefaults(),
		cards: cards,
		ready: make(map[int]bool),
	}
	s.reset()
	s.phase = Intro
	s.showSubtitle = true
	return s
}

// Init returns the effects to run when the session is first shown. With
// SkipIntro the countdown starts immediately.
func (s *Session) Init() []Effect {
	if s.cfg.SkipIntro {
		return s.Start()
	}
	return nil
}

// Start leaves the intro and begins the countdown
func (s *Session) Start() []Effect {
	if s.phase != Intro {
		return nil
	}
	return s.beginCountdown()
}

// Tick advances the countdown by one step
func (s *Session) Tick(gen uint64) []Effect {
	if gen != s.gen || s.phase != Countdown {
		return nil
	}
	s.countdown--
	if s.countdown > 0 {
		return []Effect{ScheduleTick{Gen: s.gen, After: s.cfg.TickInterval}}
	}
	s.countdown = 0
	s.phase = ChoosingCard
	s.showSubtitle = false
	return nil
}

// Tap handles a tap on fan slot pos. The first tap marks the slot and starts
// preloading; a second tap on the same slot turns the card over once its
// image is ready. Tapping another slot moves the mark.
func (s *Session) Tap(pos int) []Effect {
	if s.phase != ChoosingCard || s.flipped >= 0 {
		return nil
	}
	slot, ok := s.fan.Slot(pos)
	if !ok {
		return nil
	}
	s.imageErr = nil

	if pos != s.tapped {
		s.tapped = pos
		s.preloading = -1
		return s.preload(slot.Index)
	}

	if s.isReady(slot.Index) {
		return s.flip(pos)
	}
	s.preloading = pos
	return s.preload(slot.Index)
}

// ImageLoaded reports the outcome of a Preload effect
func (s *Session) ImageLoaded(gen uint64, index int, err error) []Effect {
	// an older draw or catalog may share indexes with this one
	if gen != s.gen {
		return nil
	}
	delete(s.pending, index)
	if err == nil {
		s.ready[index] = true
	}
	if s.phase != ChoosingCard || s.preloading < 0 {
		return nil
	}
	if s.fan.Slots[s.preloading].Index != index {
		return nil
	}

	pos := s.preloading
	s.preloading = -1
	if err != nil {
		s.imageErr = err
		return nil
	}
	return s.flip(pos)
}

// RevealDue ends the flip animation and shows the chosen card
func (s *Session) RevealDue(gen uint64) []Effect {
	if gen != s.gen || s.phase != ChoosingCard || s.selected == nil {
		return nil
	}
	s.phase = Revealed
	return nil
}

// SetQuestion records the user's question about the revealed card
func (s *Session) SetQuestion(q string) {
	if s.phase != Revealed {
		return
	}
	s.question = strings.TrimSpace(q)
}

// BeginExplain marks an explanation as in flight and returns the request to
// send. It refuses when nothing is revealed, no question is set or a request
// is already outstanding.
func (s *Session) BeginExplain() (Request, bool) {
	if s.phase != Revealed || s.selected == nil || s.question == "" || s.loading {
		return Request{}, false
	}
	s.loading = true
	s.response = ""
	return Request{Gen: s.gen, Card: *s.selected, Question: s.question}, true
}

// ApplyExplanation stores the text for a request. Results from an earlier
// generation are discarded and false is returned.
func (s *Session) ApplyExplanation(gen uint64, text string) bool {
	if gen != s.gen || s.phase != Revealed || !s.loading {
		return false
	}
	s.response = text
	s.loading = false
	return true
}

// CanSave reports whether the revealed card can still be saved
func (s *Session) CanSave() bool {
	return s.phase == Revealed && s.selected != nil && !s.saved
}

// Snapshot returns the revealed card with its question and reply
func (s *Session) Snapshot() (Snapshot, bool) {
	if s.phase != Revealed || s.selected == nil {
		return Snapshot{}, false
	}
	return Snapshot{Gen: s.gen, Card: *s.selected, Question: s.question, Reply: s.response}, true
}

// MarkSaved disables saving for the reveal of generation gen
func (s *Session) MarkSaved(gen uint64) bool {
	if gen != s.gen || s.phase != Revealed {
		return false
	}
	s.saved = true
	return true
}

// Restart throws the whole draw away, reshuffles and restarts the countdown
func (s *Session) Restart() []Effect {
	if s.phase == Closed {
		return nil
	}
	return s.beginCountdown()
}

// SetCards swaps the catalog (e.g. after a language change) and restarts
func (s *Session) SetCards(cards []card.Card) []Effect {
	if s.phase == Closed {
		return nil
	}
	s.cards = cards
	s.ready = make(map[int]bool)
	if s.phase == Intro {
		s.reset()
		return nil
	}
	return s.beginCountdown()
}

// Close tears the session down; every pending timer and result becomes stale
func (s *Session) Close() {
	s.gen++
	s.phase = Closed
	s.loading = false
}

func (s *Session) beginCountdown() []Effect {
	s.gen++
	s.reset()
	s.phase = Countdown
	s.showSubtitle = true
	if s.countdown == 0 {
		s.phase = ChoosingCard
		s.showSubtitle = false
		return nil
	}
	return []Effect{ScheduleTick{Gen: s.gen, After: s.cfg.TickInterval}}
}

// reset clears every per-draw field and deals a new fan
func (s *Session) reset() {
	s.countdown = s.cfg.Countdown
	s.fan = fan.New(len(s.cards), s.cfg.FanCount, s.cfg.Rand)
	s.tapped = -1
	s.preloading = -1
	s.flipped = -1
	s.pending = make(map[int]bool)
	s.imageErr = nil
	s.selected = nil
	s.question = ""
	s.response = ""
	s.loading = false
	s.saved = false
}

func (s *Session) isReady(index int) bool {
	if s.ready[index] {
		return true
	}
	return s.cfg.Images != nil && s.cfg.Images.Loaded(index)
}

func (s *Session) preload(index int) []Effect {
	if s.isReady(index) || s.pending[index] {
		return nil
	}
	s.pending[index] = true
	return []Effect{Preload{Gen: s.gen, Card: s.cards[index]}}
}

// flip fixes the selected card now and schedules the reveal
func (s *Session) flip(pos int) []Effect {
	c := s.cards[s.fan.Slots[pos].Index]
	s.flipped = pos
	s.preloading = -1
	s.selected = &c
	return []Effect{ScheduleReveal{Gen: s.gen, After: s.cfg.RevealDelay}}
}
