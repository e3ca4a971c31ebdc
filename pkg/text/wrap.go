package text

import "strings"

// BreakTextIntoLines greedily fills lines with whitespace-separated words
// while the measured line stays within maxWidth. A word wider than maxWidth
// gets a line of its own. Whitespace-only text yields no lines.
func BreakTextIntoLines(m Measurer, text string, fontSize, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, 1)
	currentLine := ""
	for _, word := range words {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}

		if currentLine != "" && m.Measure(testLine, fontSize) > maxWidth {
			lines = append(lines, currentLine)
			currentLine = word
			continue
		}
		currentLine = testLine
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

// TextHeight is the height of text wrapped at maxWidth with lines spaced
// fontSize*lineHeight apart.
func TextHeight(m Measurer, text string, fontSize, maxWidth, lineHeight float64) float64 {
	lines := BreakTextIntoLines(m, text, fontSize, maxWidth)
	return float64(len(lines)) * fontSize * lineHeight
}
