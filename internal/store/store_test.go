package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/aura/internal/card"
)

func setupStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := fmt.Sprintf("file:saved_%d?mode=memory&cache=shared", time.Now().UnixNano())
	s, err := Open(dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveListDelete(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	snap := SnapshotOf(card.Card{Title: "The Star", Quote: "Hope", Image: "star.png"}, "why?", "because", at)
	id, err := s.Save(ctx, "alice", snap)
	require.NoError(t, err)
	assert.Len(t, id, idLength)

	cards, err := s.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	got := cards[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "The Star", got.Title)
	assert.Equal(t, "Hope", got.Quote)
	assert.Equal(t, "star.png", got.Image)
	assert.Equal(t, "because", got.AIReply)
	assert.Equal(t, "why?", got.UserQuestion)
	assert.True(t, at.Equal(got.Time))

	require.NoError(t, s.Delete(ctx, "alice", id))
	cards, err = s.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestUserNamespaces(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, "alice", Snapshot{Title: "A"})
	require.NoError(t, err)
	_, err = s.Save(ctx, "bob", Snapshot{Title: "B"})
	require.NoError(t, err)

	bobCards, err := s.List(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobCards, 1)
	assert.Equal(t, "B", bobCards[0].Title)

	assert.ErrorIs(t, s.Delete(ctx, "bob", id), ErrNotFound, "cannot delete another user's card")
	aliceCards, err := s.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, aliceCards, 1)
}

func TestNoDeduplication(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	snap := Snapshot{Title: "Same", Time: time.Now()}

	a, err := s.Save(ctx, "u", snap)
	require.NoError(t, err)
	b, err := s.Save(ctx, "u", snap)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	cards, err := s.List(ctx, "u")
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestUnauthenticated(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "", Snapshot{})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = s.List(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, s.Delete(ctx, "", "x"), ErrUnauthenticated)
}

func TestSaveDefaultsTime(t *testing.T) {
	s := setupStore(t)
	fixed := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	_, err := s.Save(context.Background(), "u", Snapshot{Title: "T"})
	require.NoError(t, err)
	cards, err := s.List(context.Background(), "u")
	require.NoError(t, err)
	assert.True(t, fixed.Equal(cards[0].Time))
}

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "aura.db")
	s, err := Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Save(context.Background(), "u", Snapshot{Title: "T"})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("  ", nil)
	assert.Error(t, err)
}

func TestGroupByDay(t *testing.T) {
	utc := time.UTC
	cards := []SavedCard{
		{ID: "a", Time: time.Date(2025, 1, 1, 8, 0, 0, 0, utc)},
		{ID: "b", Time: time.Date(2025, 1, 2, 9, 0, 0, 0, utc)},
		{ID: "c", Time: time.Date(2025, 1, 1, 20, 0, 0, 0, utc)},
		{ID: "d", Time: time.Date(2025, 1, 2, 7, 0, 0, 0, utc)},
	}

	groups := Group(cards, "January 2, 2006", utc)
	require.Len(t, groups, 2)
	assert.Equal(t, "January 2, 2025", groups[0].Key)
	assert.Equal(t, []string{"b", "d"}, ids(groups[0].Cards))
	assert.Equal(t, "January 1, 2025", groups[1].Key)
	assert.Equal(t, []string{"c", "a"}, ids(groups[1].Cards))

	assert.Equal(t, "a", cards[0].ID, "input is not reordered")
}

func TestRemoveKeepsGroupKeys(t *testing.T) {
	utc := time.UTC
	cards := []SavedCard{
		{ID: "a", Time: time.Date(2025, 1, 1, 8, 0, 0, 0, utc)},
		{ID: "b", Time: time.Date(2025, 1, 2, 9, 0, 0, 0, utc)},
		{ID: "c", Time: time.Date(2025, 1, 2, 10, 0, 0, 0, utc)},
	}

	remaining := Remove(cards, "c")
	assert.Equal(t, []string{"a", "b"}, ids(remaining))
	assert.Len(t, cards, 3)

	groups := Group(remaining, "2006-01-02", utc)
	require.Len(t, groups, 2)
	assert.Equal(t, "2025-01-02", groups[0].Key)
	assert.Equal(t, "2025-01-01", groups[1].Key)

	assert.Len(t, Remove(cards, "missing"), 3)
}

func ids(cards []SavedCard) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}
