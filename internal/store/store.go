// Package store persists saved cards per user.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/arcanaland/aura/internal/card"
)

var (
	// ErrUnauthenticated is returned when an operation is attempted without a user
	ErrUnauthenticated = errors.New("store: no authenticated user")
	// ErrNotFound is returned when deleting a card the user does not own
	ErrNotFound = errors.New("store: saved card not found")
)

// SavedCard is a persisted card snapshot owned by one user
type SavedCard struct {
	ID           string    `gorm:"primaryKey;size:21" json:"id"`
	UserID       string    `gorm:"index;not null;size:64" json:"-"`
	Title        string    `gorm:"size:200" json:"title"`
	Quote        string    `gorm:"type:text" json:"quote"`
	Image        string    `gorm:"size:500" json:"image"`
	Time         time.Time `gorm:"not null" json:"time"`
	AIReply      string    `gorm:"type:text" json:"ai_reply"`
	UserQuestion string    `gorm:"type:text" json:"user_question"`
}

// TableName sets the table name
func (SavedCard) TableName() string {
	return "saved_cards"
}

// Snapshot is the data written by Save
type Snapshot struct {
	Title        string
	Quote        string
	Image        string
	Time         time.Time
	AIReply      string
	UserQuestion string
}

// SnapshotOf captures a revealed card with its question and reply
func SnapshotOf(c card.Card, question, reply string, at time.Time) Snapshot {
	return Snapshot{
		Title:        c.Heading(),
		Quote:        c.Quote,
		Image:        c.Image,
		Time:         at,
		AIReply:      reply,
		UserQuestion: question,
	}
}

// Store saves, lists and deletes a user's cards
type Store interface {
	Save(ctx context.Context, userID string, snap Snapshot) (string, error)
	List(ctx context.Context, userID string) ([]SavedCard, error)
	Delete(ctx context.Context, userID, id string) error
}
