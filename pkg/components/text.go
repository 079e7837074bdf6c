package components

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/go-drift/carbon/pkg/geometry"
)

// Metrics selects the unit text is measured in.
type Metrics int

const (
	// Cells measures in terminal cells: one row per line, wide runes count twice.
	Cells Metrics = iota
	// Points measures in pixels of the 7x13 fixed bitmap face.
	Points
)

// TextLine is a single laid-out line of text.
type TextLine struct {
	Text  string
	Width float64
}

// TextLayout holds wrapped lines and their bounding size.
type TextLayout struct {
	Lines      []TextLine
	LineHeight float64
	Size       geometry.Size
}

var face font.Face = basicfont.Face7x13

// LayoutText wraps text at word boundaries so that no line exceeds
// maxWidth, measured in m. A maxWidth of zero disables wrapping.
func LayoutText(text string, maxWidth float64, m Metrics) TextLayout {
	measure, lineHeight := m.measurer()
	lines := layoutLines(text, maxWidth, measure)
	if len(lines) == 0 {
		lines = []TextLine{{}}
	}
	width := 0.0
	for _, line := range lines {
		width = math.Max(width, line.Width)
	}
	return TextLayout{
		Lines:      lines,
		LineHeight: lineHeight,
		Size:       geometry.Size{Width: width, Height: lineHeight * float64(len(lines))},
	}
}

// Strings returns the text of every line.
func (l TextLayout) Strings() []string {
	out := make([]string, len(l.Lines))
	for i, line := range l.Lines {
		out[i] = line.Text
	}
	return out
}

func (m Metrics) measurer() (func(string) float64, float64) {
	if m == Points {
		return func(s string) float64 {
			return float64(font.MeasureString(face, s).Ceil())
		}, float64(face.Metrics().Height.Ceil())
	}
	return func(s string) float64 {
		return float64(lipgloss.Width(s))
	}, 1
}

func layoutLines(text string, maxWidth float64, measure func(string) float64) []TextLine {
	if maxWidth < 0 || math.IsInf(maxWidth, 0) {
		maxWidth = 0
	}
	paragraphs := strings.Split(text, "\n")
	lines := make([]TextLine, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		if paragraph == "" {
			lines = append(lines, TextLine{})
			continue
		}
		if maxWidth == 0 {
			lines = append(lines, TextLine{Text: paragraph, Width: measure(paragraph)})
			continue
		}
		for _, line := range wrapParagraph(paragraph, maxWidth, measure) {
			lines = append(lines, TextLine{Text: line, Width: measure(line)})
		}
	}
	return lines
}

// wrapParagraph breaks at the end of the longest run that fits when a space
// follows it, else after the last space inside it, else mid-word. Every
// line holds at least one rune.
func wrapParagraph(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	start := 0
	for start < len(text) {
		lastBreak := -1
		lastFit := -1
		for i := start; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			next := i + size
			if measure(text[start:next]) > maxWidth {
				break
			}
			lastFit = next
			if unicode.IsSpace(r) {
				lastBreak = next
			}
			i = next
		}
		if lastFit == -1 {
			_, size := utf8.DecodeRuneInString(text[start:])
			lastFit = start + size
		}
		cut := lastFit
		if lastFit < len(text) && !spaceAt(text, lastFit) && lastBreak > start && lastBreak < lastFit {
			cut = lastBreak
		}
		lines = append(lines, strings.TrimRightFunc(text[start:cut], unicode.IsSpace))
		start = cut
		for start < len(text) {
			r, size := utf8.DecodeRuneInString(text[start:])
			if !unicode.IsSpace(r) {
				break
			}
			start += size
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func spaceAt(text string, i int) bool {
	r, _ := utf8.DecodeRuneInString(text[i:])
	return unicode.IsSpace(r)
}
