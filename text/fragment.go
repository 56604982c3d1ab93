package text

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/contour/model"
)

// Run is a single positioned text run as emitted by the PDF source,
// before any merging or cleaning
type Run struct {
	Text     string
	FontName string
	FontSize float64
	X, Y     float64
	Width    float64
	Height   float64
}

// TextFragment represents one normalized line of text with positional and
// style metadata. Fragments are immutable after creation.
type TextFragment struct {
	// Text is the cleaned line text
	Text string

	// Page is the 0-based page index the fragment appears on
	Page int

	// FontName is the dominant font of the line
	FontName string

	// FontSize is the dominant font size of the line
	FontSize float64

	// Bold and Italic are inferred from the font name
	Bold   bool
	Italic bool

	// BBox is the bounding box covering all runs in the line
	BBox model.BBox

	// LineID is the fragment's position in document reading order (0-based)
	LineID int
}

// WordCount returns the number of whitespace-separated tokens in the fragment
func (f TextFragment) WordCount() int {
	return len(strings.Fields(f.Text))
}

// IsBoldFont reports whether a font name indicates bold weight
func IsBoldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") ||
		strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy") ||
		strings.Contains(lower, "semibold") ||
		strings.Contains(lower, "demibold")
}

// IsItalicFont reports whether a font name indicates italic or oblique style
func IsItalicFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "italic") ||
		strings.Contains(lower, "oblique")
}

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	trailingNumRe  = regexp.MustCompile(`\s+\d+\s*$`)
	digitsRe       = regexp.MustCompile(`\d+`)
	nonWordOnlyRe  = regexp.MustCompile(`^[\d\W]+$`)
)

// Clean applies NFKC normalization and collapses internal whitespace.
// Returns the empty string for whitespace-only input.
func Clean(s string) string {
	s = norm.NFKC.String(s)
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	return s
}

// CleanHeading cleans text destined for a title or outline entry: collapses
// whitespace, strips a trailing page-number suffix, and trims trailing dots
func CleanHeading(s string) string {
	s = Clean(s)
	s = trailingNumRe.ReplaceAllString(s, "")
	return strings.TrimRight(s, ".")
}

// NormalizeForComparison replaces digit runs with a placeholder so that
// "Page 3" and "Page 17" compare equal during repeated-text detection
func NormalizeForComparison(s string) string {
	return digitsRe.ReplaceAllString(s, "#")
}

// IsSymbolic reports whether text consists only of digits, punctuation,
// and symbols (no letters)
func IsSymbolic(s string) bool {
	return nonWordOnlyRe.MatchString(s)
}
