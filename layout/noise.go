package layout

import (
	"math"

	"github.com/tsawler/contour/text"
)

// PageFragments holds the normalized fragments of a single page together
// with the page dimensions
type PageFragments struct {
	Page      int
	Width     float64
	Height    float64
	Fragments []text.TextFragment
}

// NoiseConfig holds configuration for repeated header/footer suppression
type NoiseConfig struct {
	// MinOccurrenceRatio is the minimum fraction of pages a fragment must
	// repeat on to be considered noise (default: 0.6)
	MinOccurrenceRatio float64

	// PositionTolerance is the maximum difference in relative vertical
	// position (fraction of page height) for two fragments to count as
	// the same repeated element (default: 0.02)
	PositionTolerance float64

	// MinPages is the minimum page count for suppression to activate
	// (default: 2)
	MinPages int
}

// DefaultNoiseConfig returns sensible default configuration
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		MinOccurrenceRatio: 0.6,
		PositionTolerance:  0.02,
		MinPages:           2,
	}
}

// NoiseDetector finds fragments that repeat at the same relative position
// across pages (running headers, footers, page numbers)
type NoiseDetector struct {
	config NoiseConfig
}

// NewNoiseDetector creates a detector with default configuration
func NewNoiseDetector() *NoiseDetector {
	return &NoiseDetector{config: DefaultNoiseConfig()}
}

// NewNoiseDetectorWithConfig creates a detector with custom configuration
func NewNoiseDetectorWithConfig(config NoiseConfig) *NoiseDetector {
	return &NoiseDetector{config: config}
}

// noiseKey identifies a repeated element: normalized text plus a bucketed
// relative vertical position. Digit runs are normalized so "Page 3" and
// "Page 17" collide.
type noiseKey struct {
	text   string
	bucket int
}

// NoiseResult records which (text, position) pairs were identified as noise
type NoiseResult struct {
	keys   map[noiseKey]bool
	config NoiseConfig
}

// Detect analyzes all pages and returns the repeated-element result
func (d *NoiseDetector) Detect(pages []PageFragments) *NoiseResult {
	result := &NoiseResult{
		keys:   make(map[noiseKey]bool),
		config: d.config,
	}
	if len(pages) < d.config.MinPages {
		return result
	}

	// Count, per key, the set of pages it appears on
	occurrences := make(map[noiseKey]map[int]bool)
	for _, page := range pages {
		for _, frag := range page.Fragments {
			key := d.keyFor(frag, page.Height)
			if occurrences[key] == nil {
				occurrences[key] = make(map[int]bool)
			}
			occurrences[key][page.Page] = true
		}
	}

	minOccurrences := int(math.Ceil(float64(len(pages)) * d.config.MinOccurrenceRatio))
	if minOccurrences < 2 {
		minOccurrences = 2
	}

	for key, pageSet := range occurrences {
		if len(pageSet) >= minOccurrences {
			result.keys[key] = true
		}
	}

	return result
}

// keyFor computes the identity key of a fragment
func (d *NoiseDetector) keyFor(frag text.TextFragment, pageHeight float64) noiseKey {
	rel := 0.0
	if pageHeight > 0 {
		rel = frag.BBox.Y / pageHeight
	}
	bucket := int(rel / d.config.PositionTolerance)
	return noiseKey{
		text:   text.NormalizeForComparison(frag.Text),
		bucket: bucket,
	}
}

// IsNoise reports whether a fragment matches a detected repeated element
func (r *NoiseResult) IsNoise(frag text.TextFragment, pageHeight float64) bool {
	if r == nil || len(r.keys) == 0 {
		return false
	}
	d := NoiseDetector{config: r.config}
	return r.keys[d.keyFor(frag, pageHeight)]
}

// Count returns the number of distinct repeated elements detected
func (r *NoiseResult) Count() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Filter returns the fragments of all pages with noise removed, preserving
// reading order
func (r *NoiseResult) Filter(pages []PageFragments) []text.TextFragment {
	var kept []text.TextFragment
	for _, page := range pages {
		for _, frag := range page.Fragments {
			if r.IsNoise(frag, page.Height) {
				continue
			}
			kept = append(kept, frag)
		}
	}
	return kept
}
