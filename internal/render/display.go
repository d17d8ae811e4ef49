package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"golang.org/x/term"
)

// Field is one labelled line of card information
type Field struct {
	Label string
	Value string
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// SideBySide prints art on the left and the fields plus wrapped body on the right
func SideBySide(w io.Writer, art string, fields []Field, bodyTitle, body string, width int) {
	var artLines []string
	if art != "" {
		artLines = strings.Split(art, "\n")
	}
	maxArtWidth := 0
	for _, line := range artLines {
		if n := len([]rune(StripANSI(line))); n > maxArtWidth {
			maxArtWidth = n
		}
	}

	spacing := 4
	infoStartCol := 0
	if maxArtWidth > 0 {
		infoStartCol = maxArtWidth + spacing
	}
	infoWidth := width - infoStartCol - 4
	if infoWidth < 20 {
		infoWidth = 20
	}

	var infoLines []string
	labelWidth := 0
	for _, f := range fields {
		if len(f.Label) > labelWidth {
			labelWidth = len(f.Label)
		}
	}
	for _, f := range fields {
		label := fmt.Sprintf("%-*s ", labelWidth+1, f.Label+":")
		infoLines = append(infoLines, colorize.CyanString("%s", label)+colorize.HiWhiteString("%s", f.Value))
	}
	if body != "" {
		if len(infoLines) > 0 {
			infoLines = append(infoLines, "")
		}
		if bodyTitle != "" {
			infoLines = append(infoLines, colorize.CyanString("%s", bodyTitle+":"))
		}
		infoLines = append(infoLines, WrapText(body, infoWidth)...)
	}

	fmt.Fprintln(w)
	for i := 0; i < max(len(artLines), len(infoLines)); i++ {
		fmt.Fprint(w, "  ")
		if infoStartCol > 0 {
			if i < len(artLines) {
				fmt.Fprint(w, artLines[i])
				visible := len([]rune(StripANSI(artLines[i])))
				fmt.Fprint(w, strings.Repeat(" ", infoStartCol-visible))
			} else {
				fmt.Fprint(w, strings.Repeat(" ", infoStartCol))
			}
		}
		if i < len(infoLines) {
			fmt.Fprint(w, infoLines[i])
		}
		fmt.Fprintln(w)
	}
}
