package layout

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsawler/contour/model"
	"github.com/tsawler/contour/text"
)

// TitleConfig holds configuration for title detection
type TitleConfig struct {
	// TopFraction is the portion of the page, measured from the top, a
	// fragment must start in to be a title candidate (default: 1/3)
	TopFraction float64

	// MinLength and MaxLength bound the accepted title length in runes
	// (defaults: 4 and 200)
	MinLength int
	MaxLength int

	// SizeTolerance is how far below the page's largest font size a
	// candidate may be and still merge into the title, in points
	// (default: 0.5)
	SizeTolerance float64

	// NoiseWords disqualify a page-0 line from being the title when any
	// of them appears in the lowercased text
	NoiseWords []string
}

// DefaultTitleConfig returns sensible default configuration
func DefaultTitleConfig() TitleConfig {
	return TitleConfig{
		TopFraction:   1.0 / 3.0,
		MinLength:     4,
		MaxLength:     200,
		SizeTolerance: 0.5,
		NoiseWords:    []string{"page", "copyright", "www.", "http"},
	}
}

// TitleResult is the outcome of title detection. LineIDs lists the
// fragments consumed by the title so the classifier can exclude them.
type TitleResult struct {
	Title   string
	LineIDs map[int]bool
}

// Consumed reports whether a fragment was used to build the title
func (r TitleResult) Consumed(frag text.TextFragment) bool {
	return r.LineIDs[frag.LineID]
}

// TitleDetector identifies the document title from metadata and the first
// page
type TitleDetector struct {
	config TitleConfig
}

// NewTitleDetector creates a detector with default configuration
func NewTitleDetector() *TitleDetector {
	return NewTitleDetectorWithConfig(DefaultTitleConfig())
}

// NewTitleDetectorWithConfig creates a detector with custom configuration
func NewTitleDetectorWithConfig(config TitleConfig) *TitleDetector {
	return &TitleDetector{config: config}
}

// Detect resolves the document title. Preference order: a usable metadata
// title, then the largest-styled text near the top of page 0. When neither
// qualifies the title is empty.
func (d *TitleDetector) Detect(pageZero []text.TextFragment, pageHeight float64, meta model.Metadata, filename string) TitleResult {
	result := TitleResult{LineIDs: make(map[int]bool)}

	if title, ok := d.usableMetadataTitle(meta, filename); ok {
		result.Title = title
		return result
	}

	if title, ids := d.detectFromContent(pageZero, pageHeight); title != "" {
		result.Title = title
		result.LineIDs = ids
	}
	return result
}

// usableMetadataTitle validates the embedded metadata title. Placeholders
// (empty, too short, equal to the filename stem) are rejected.
func (d *TitleDetector) usableMetadataTitle(meta model.Metadata, filename string) (string, bool) {
	title := text.Clean(meta.Title)
	if len([]rune(title)) < d.config.MinLength {
		return "", false
	}
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if strings.EqualFold(title, stem) || strings.EqualFold(title, HumanizeStem(filename)) {
		return "", false
	}
	return text.CleanHeading(title), true
}

// detectFromContent looks for the largest-font text in the top third of
// page 0 and merges adjacent qualifying lines into one title string
func (d *TitleDetector) detectFromContent(pageZero []text.TextFragment, pageHeight float64) (string, map[int]bool) {
	if len(pageZero) == 0 || pageHeight <= 0 {
		return "", nil
	}

	topCutoff := pageHeight * (1.0 - d.config.TopFraction)

	// Largest font size among fragments starting in the top third
	maxSize := 0.0
	for _, frag := range pageZero {
		if frag.BBox.Top() < topCutoff {
			continue
		}
		if d.disqualified(frag.Text) {
			continue
		}
		if frag.FontSize > maxSize {
			maxSize = frag.FontSize
		}
	}
	if maxSize <= 0 {
		return "", nil
	}

	// Collect consecutive qualifying lines at (or just below) that size
	ids := make(map[int]bool)
	var parts []string
	lastLineID := -2
	for _, frag := range pageZero {
		if frag.BBox.Top() < topCutoff {
			continue
		}
		if frag.FontSize < maxSize-d.config.SizeTolerance {
			continue
		}
		if d.disqualified(frag.Text) {
			continue
		}
		// Only merge lines directly adjacent to the running title block
		if len(parts) > 0 && frag.LineID != lastLineID+1 {
			break
		}
		parts = append(parts, frag.Text)
		ids[frag.LineID] = true
		lastLineID = frag.LineID
	}

	if len(parts) == 0 {
		return "", nil
	}

	title := text.CleanHeading(strings.Join(parts, " "))
	if len([]rune(title)) < d.config.MinLength || len([]rune(title)) > d.config.MaxLength {
		return "", nil
	}
	return title, ids
}

// disqualified rejects symbolic lines and boilerplate that should never
// become a title
func (d *TitleDetector) disqualified(s string) bool {
	if text.IsSymbolic(s) {
		return true
	}
	lower := strings.ToLower(s)
	for _, word := range d.config.NoiseWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// HumanizeStem turns a filename into a readable fallback title:
// "annual_report-2024.pdf" becomes "Annual Report 2024"
func HumanizeStem(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if stem == "." || stem == string(filepath.Separator) {
		// filepath.Base maps empty and root paths to "." and "/"
		return ""
	}
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	stem = text.Clean(stem)
	if stem == "" {
		return ""
	}
	return cases.Title(language.English).String(stem)
}
