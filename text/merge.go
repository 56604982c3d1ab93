package text

import (
	"sort"

	"github.com/tsawler/contour/model"
)

// MergeConfig holds configuration for run-to-line merging
type MergeConfig struct {
	// LineTolerance is the minimum vertical bounding-box overlap, as a
	// fraction of run height, for a run to join a line (default: 0.5)
	LineTolerance float64

	// GapRatio is the minimum horizontal gap between adjacent runs, as a
	// fraction of font size, that produces a joining space (default: 0.3)
	GapRatio float64
}

// DefaultMergeConfig returns sensible default configuration
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		LineTolerance: 0.5,
		GapRatio:      0.3,
	}
}

// Merger merges raw positioned runs into line-level fragments
type Merger struct {
	config MergeConfig
}

// NewMerger creates a merger with default configuration
func NewMerger() *Merger {
	return &Merger{config: DefaultMergeConfig()}
}

// NewMergerWithConfig creates a merger with custom configuration
func NewMergerWithConfig(config MergeConfig) *Merger {
	return &Merger{config: config}
}

// MergePage merges the runs of a single page into fragments in reading
// order. Fragments never span pages; empty lines are discarded. The
// firstLineID parameter seeds document-wide line numbering so LineIDs stay
// unique and ordered across pages.
func (m *Merger) MergePage(runs []Run, page int, firstLineID int) []TextFragment {
	if len(runs) == 0 {
		return nil
	}

	lines := m.groupIntoLines(runs)

	fragments := make([]TextFragment, 0, len(lines))
	for _, line := range lines {
		frag, ok := m.buildFragment(line, page)
		if !ok {
			continue
		}
		frag.LineID = firstLineID + len(fragments)
		fragments = append(fragments, frag)
	}

	return fragments
}

// groupIntoLines groups runs whose bounding boxes overlap vertically, top
// of page first, then sorts each line left to right
func (m *Merger) groupIntoLines(runs []Run) [][]Run {
	sorted := make([]Run, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if m.sharesLine(runBBox(sorted[i]), sorted[j]) {
			return false // Same line, preserve stream order
		}
		return sorted[i].Y > sorted[j].Y // Higher Y first (top of page in PDF coords)
	})

	var lines [][]Run
	var current []Run
	var lineBox model.BBox

	for _, run := range sorted {
		if len(current) == 0 {
			current = append(current, run)
			lineBox = runBBox(run)
			continue
		}

		if m.sharesLine(lineBox, run) {
			current = append(current, run)
			lineBox = lineBox.Union(runBBox(run))
		} else {
			lines = append(lines, sortByX(current))
			current = []Run{run}
			lineBox = runBBox(run)
		}
	}
	if len(current) > 0 {
		lines = append(lines, sortByX(current))
	}

	return lines
}

// sharesLine reports whether a run's box overlaps a line's box vertically
// by at least the tolerance fraction of the run height
func (m *Merger) sharesLine(lineBox model.BBox, r Run) bool {
	return lineBox.YOverlap(runBBox(r)) >= runHeight(r)*m.config.LineTolerance
}

// runHeight returns the effective height of a run, falling back on font
// size for producers that report none
func runHeight(r Run) float64 {
	h := r.Height
	if h <= 0 {
		h = r.FontSize
	}
	if h <= 0 {
		h = 12.0
	}
	return h
}

// buildFragment assembles one line of runs into a TextFragment. Returns
// false when the cleaned text is empty.
func (m *Merger) buildFragment(line []Run, page int) (TextFragment, bool) {
	if len(line) == 0 {
		return TextFragment{}, false
	}

	// Join run text with a space when the horizontal gap is significant
	var sb []byte
	var lastEndX float64
	for i, run := range line {
		if i > 0 {
			gap := run.X - lastEndX
			if gap > run.FontSize*m.config.GapRatio {
				sb = append(sb, ' ')
			}
		}
		sb = append(sb, run.Text...)
		lastEndX = run.X + run.Width
	}

	cleaned := Clean(string(sb))
	if cleaned == "" {
		return TextFragment{}, false
	}

	// The dominant run (widest) supplies the line's font identity
	dominant := line[0]
	for _, run := range line[1:] {
		if run.Width > dominant.Width {
			dominant = run
		}
	}

	bbox := runBBox(line[0])
	for _, run := range line[1:] {
		bbox = bbox.Union(runBBox(run))
	}

	return TextFragment{
		Text:     cleaned,
		Page:     page,
		FontName: dominant.FontName,
		FontSize: dominant.FontSize,
		Bold:     IsBoldFont(dominant.FontName),
		Italic:   IsItalicFont(dominant.FontName),
		BBox:     bbox,
	}, true
}

// runBBox returns the bounding box of a single run
func runBBox(r Run) model.BBox {
	return model.NewBBox(r.X, r.Y, r.Width, runHeight(r))
}

// sortByX orders the runs of a line left to right, keeping stream order for
// near-equal positions (overlapping runs from some PDF producers)
func sortByX(line []Run) []Run {
	sort.SliceStable(line, func(i, j int) bool {
		xTol := line[i].FontSize * 0.1
		if absFloat(line[i].X-line[j].X) < xTol {
			return false
		}
		return line[i].X < line[j].X
	})
	return line
}

// absFloat returns the absolute value of a float64
func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
