package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	colorize "github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(c color.Color, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestImageToANSIDimensions(t *testing.T) {
	art := ImageToANSI(solidImage(color.RGBA{200, 10, 10, 255}, 40, 40), 8, 4)

	lines := strings.Split(art, "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Equal(t, 8, len([]rune(StripANSI(line))))
	}
	assert.Contains(t, art, "\x1b[38;2;")
}

func TestDecodeANSI(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(color.White, 10, 10)))

	art, err := DecodeANSI(&buf, 4, 2)
	require.NoError(t, err)
	assert.Contains(t, art, "\x1b[48;2;")

	_, err = DecodeANSI(strings.NewReader("not an image"), 4, 2)
	assert.Error(t, err)
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "▀x", StripANSI("\x1b[38;2;1;2;3m\x1b[48;2;4;5;6m▀\x1b[0mx"))
	assert.Equal(t, "plain", StripANSI("plain"))
}

func TestWrapText(t *testing.T) {
	lines := WrapText("one two three four five six seven eight nine ten", 14)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 14)
	}
	assert.Equal(t, "one two three", lines[0])

	assert.Equal(t, []string{"a", "", "b"}, WrapText("a\n\nb", 40))
}

func TestSideBySideWithoutArt(t *testing.T) {
	colorize.NoColor = true
	defer func() { colorize.NoColor = false }()

	var buf bytes.Buffer
	SideBySide(&buf, "", []Field{{"Card", "The Star"}, {"ID", "17"}}, "Quote", "Hope returns quietly.", 80)

	out := buf.String()
	assert.Contains(t, out, "Card: The Star")
	assert.Contains(t, out, "Quote:")
	assert.Contains(t, out, "Hope returns quietly.")
}
