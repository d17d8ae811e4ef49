package fan

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/aura/internal/card"
)

func TestShuffleSizeAndUniqueness(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, tc := range []struct{ size, count, want int }{
		{22, 53, 22},
		{78, 53, 53},
		{53, 53, 53},
		{1, 53, 1},
		{0, 53, 0},
		{10, 0, 0},
	} {
		got := Shuffle(tc.size, tc.count, rng)
		assert.Len(t, got, tc.want, "size=%d count=%d", tc.size, tc.count)

		seen := map[int]bool{}
		for _, idx := range got {
			assert.False(t, seen[idx], "duplicate index %d", idx)
			assert.True(t, idx >= 0 && idx < tc.size)
			seen[idx] = true
		}
	}
}

func TestLayoutAngles(t *testing.T) {
	slots := Layout(53)
	require.Len(t, slots, 53)
	for i, s := range slots {
		want := (345.0 / 53) * float64(i)
		assert.InDelta(t, want, s.Angle, 1e-9)
		assert.InDelta(t, want+90, s.Rotation, 1e-9)
		assert.InDelta(t, Radius, math.Hypot(s.X, s.Y), 1e-9)
	}
	assert.Equal(t, 0.0, slots[0].Angle)
	assert.InDelta(t, Radius, slots[0].X, 1e-9)
}

func TestLayoutIndependentOfShuffle(t *testing.T) {
	a := New(78, 53, rand.New(rand.NewPCG(1, 1)))
	b := New(78, 53, rand.New(rand.NewPCG(9, 9)))

	require.NotEqual(t, a.Indices(), b.Indices())
	for i := range a.Slots {
		assert.Equal(t, a.Slots[i].Angle, b.Slots[i].Angle)
		assert.Equal(t, a.Slots[i].X, b.Slots[i].X)
	}
}

func TestSlotLookup(t *testing.T) {
	f := New(5, 53, nil)
	assert.Equal(t, 5, f.Len())
	_, ok := f.Slot(5)
	assert.False(t, ok)
	s, ok := f.Slot(4)
	require.True(t, ok)
	assert.Equal(t, 4, s.Position)
}

func TestPlotStaysInGrid(t *testing.T) {
	f := New(53, 53, nil)
	points := Plot(f, 60, 15)
	require.Len(t, points, 53)
	for _, p := range points {
		assert.True(t, p.Row >= 0 && p.Row < 15, "row %d", p.Row)
		assert.True(t, p.Col >= 0 && p.Col < 60, "col %d", p.Col)
	}
	assert.Nil(t, Plot(f, 2, 2))
}

type countingSource struct {
	opens atomic.Int32
	data  []byte
	err   error
}

func (s *countingSource) Open(context.Context, string) (io.ReadCloser, error) {
	s.opens.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

func pngBytes(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPreloaderMemoizes(t *testing.T) {
	src := &countingSource{data: pngBytes(t)}
	p := NewPreloader(src, 4, 2)
	c := card.Card{Index: 7, Title: "The Chariot", Image: "chariot.png"}

	assert.False(t, p.Loaded(7))
	art, err := p.Load(context.Background(), c)
	require.NoError(t, err)
	assert.NotEmpty(t, art)

	_, err = p.Load(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.opens.Load())
	assert.True(t, p.Loaded(7))
}

func TestPreloaderFailureIsRetried(t *testing.T) {
	src := &countingSource{err: errors.New("404")}
	p := NewPreloader(src, 4, 2)
	c := card.Card{Index: 2, Image: "missing.png"}

	_, err := p.Load(context.Background(), c)
	require.Error(t, err)
	_, err = p.Load(context.Background(), c)
	require.Error(t, err)

	assert.Equal(t, int32(2), src.opens.Load())
	assert.False(t, p.Loaded(2))
}

func TestPreloaderCardWithoutImage(t *testing.T) {
	src := &countingSource{}
	p := NewPreloader(src, 4, 2)

	art, err := p.Load(context.Background(), card.Card{Index: 1, Category: "Hope"})
	require.NoError(t, err)
	assert.Empty(t, art)
	assert.True(t, p.Loaded(1))
	assert.Zero(t, src.opens.Load())
}

func TestPreloaderReset(t *testing.T) {
	src := &countingSource{data: pngBytes(t)}
	p := NewPreloader(src, 4, 2)
	c := card.Card{Index: 3, Image: "empress.png"}

	_, err := p.Load(context.Background(), c)
	require.NoError(t, err)
	p.Reset()
	assert.False(t, p.Loaded(3))

	_, err = p.Load(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.opens.Load())
}
