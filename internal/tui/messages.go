package tui

import (
	"github.com/arcanaland/aura/internal/auth"
	"github.com/arcanaland/aura/internal/explain"
	"github.com/arcanaland/aura/internal/store"
)

// Messages produced by commands. Anything that belongs to one draw carries the
// session generation it was issued in.

type tickMsg struct {
	gen uint64
}

type revealMsg struct {
	gen uint64
}

type imageLoadedMsg struct {
	gen   uint64
	index int
	err   error
}

type explanationMsg struct {
	gen     uint64
	outcome explain.Outcome
}

type savedMsg struct {
	gen uint64
	id  string
	err error
}

type savedListMsg struct {
	cards []store.SavedCard
	err   error
}

type deletedMsg struct {
	id    string
	title string
	err   error
}

type signedInMsg struct {
	identity *auth.Identity
	err      error
}

type authChangedMsg struct {
	identity *auth.Identity
}
