package session

import (
	"github.com/arcanaland/aura/internal/card"
	"github.com/arcanaland/aura/internal/fan"
)

// Gen returns the current generation
func (s *Session) Gen() uint64 { return s.gen }

// Phase returns the current phase
func (s *Session) Phase() Phase { return s.phase }

// Remaining returns the countdown value
func (s *Session) Remaining() int { return s.countdown }

// ShowSubtitle reports whether the intro subtitle is visible
func (s *Session) ShowSubtitle() bool { return s.showSubtitle }

// Fan returns the current fan
func (s *Session) Fan() fan.Fan { return s.fan }

// Tapped returns the tapped slot or -1
func (s *Session) Tapped() int { return s.tapped }

// Preloading returns the slot waiting on its image or -1
func (s *Session) Preloading() int { return s.preloading }

// Flipped returns the slot being turned over or -1
func (s *Session) Flipped() int { return s.flipped }

// ImageError returns the last image load failure for the tapped card
func (s *Session) ImageError() error { return s.imageErr }

// Selected returns the chosen card once a flip has been confirmed
func (s *Session) Selected() (card.Card, bool) {
	if s.selected == nil {
		return card.Card{}, false
	}
	return *s.selected, true
}

// Question returns the user's question
func (s *Session) Question() string { return s.question }

// Response returns the explanation text
func (s *Session) Response() string { return s.response }

// Loading reports whether an explanation is in flight
func (s *Session) Loading() bool { return s.loading }

// Saved reports whether the current reveal was saved
func (s *Session) Saved() bool { return s.saved }
