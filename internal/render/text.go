package render

import (
	"strings"
	"unicode/utf8"
)

// WrapText wraps text to width columns, keeping blank lines between paragraphs
func WrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			result = append(result, "")
			continue
		}

		var line string
		for _, word := range words {
			switch {
			case line == "":
				line = word
			case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width:
				line += " " + word
			default:
				result = append(result, line)
				line = word
			}
		}
		result = append(result, line)
	}
	return result
}
