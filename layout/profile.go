package layout

import (
	"sort"

	"github.com/tsawler/contour/text"
)

// StyleProfile holds document-wide font statistics used as the baseline for
// relative heading classification. Computed once per document, read-only
// thereafter.
type StyleProfile struct {
	// BodyFontSize is the dominant font size of body text
	BodyFontSize float64

	// SizeHistogram maps bucketed font sizes to fragment counts
	SizeHistogram map[float64]int

	// DistinctSizes is the unique bucketed sizes in descending order
	DistinctSizes []float64

	// SizeBucket is the bucketing precision the profile was computed
	// with; consumers bucket lookups with the same precision
	SizeBucket float64
}

// ProfilerConfig holds configuration for style profiling
type ProfilerConfig struct {
	// SizeBucket is the font size bucketing precision in points
	// (default: 0.5)
	SizeBucket float64

	// MinBodyWords is the minimum word count for a fragment to count as
	// body-text evidence when electing the body font size (default: 3)
	MinBodyWords int

	// FallbackBodySize is used when no fragments qualify (default: 12.0)
	FallbackBodySize float64
}

// DefaultProfilerConfig returns sensible default configuration
func DefaultProfilerConfig() ProfilerConfig {
	return ProfilerConfig{
		SizeBucket:       0.5,
		MinBodyWords:     3,
		FallbackBodySize: 12.0,
	}
}

// StyleProfiler computes a StyleProfile from a fragment sequence
type StyleProfiler struct {
	config ProfilerConfig
}

// NewStyleProfiler creates a profiler with default configuration
func NewStyleProfiler() *StyleProfiler {
	return &StyleProfiler{config: DefaultProfilerConfig()}
}

// NewStyleProfilerWithConfig creates a profiler with custom configuration
func NewStyleProfilerWithConfig(config ProfilerConfig) *StyleProfiler {
	return &StyleProfiler{config: config}
}

// Profile computes document-wide statistics over the full ordered fragment
// sequence. Deterministic for a given sequence: mode ties break toward the
// smallest size.
func (p *StyleProfiler) Profile(fragments []text.TextFragment) *StyleProfile {
	profile := &StyleProfile{
		SizeHistogram: make(map[float64]int),
		SizeBucket:    p.config.SizeBucket,
	}

	// Histogram and distinct sizes cover every fragment
	for _, frag := range fragments {
		profile.SizeHistogram[p.Bucket(frag.FontSize)]++
	}
	for size := range profile.SizeHistogram {
		profile.DistinctSizes = append(profile.DistinctSizes, size)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(profile.DistinctSizes)))

	// Body size is the mode among long-enough fragments; short fragments
	// (headings, captions, numbers) would otherwise skew the baseline
	bodyCounts := make(map[float64]int)
	for _, frag := range fragments {
		if frag.WordCount() >= p.config.MinBodyWords {
			bodyCounts[p.Bucket(frag.FontSize)]++
		}
	}
	if len(bodyCounts) == 0 {
		bodyCounts = profile.SizeHistogram
	}

	profile.BodyFontSize = p.config.FallbackBodySize
	bestCount := 0
	for size, count := range bodyCounts {
		if count > bestCount || (count == bestCount && size < profile.BodyFontSize) {
			bestCount = count
			profile.BodyFontSize = size
		}
	}

	return profile
}

// Bucket rounds a font size to the profiler's bucketing precision
func (p *StyleProfiler) Bucket(size float64) float64 {
	return bucketSize(size, p.config.SizeBucket)
}

// Bucket rounds a font size to the precision this profile was computed
// with, so lookups land in the same buckets as the histogram
func (s *StyleProfile) Bucket(size float64) float64 {
	return bucketSize(size, s.SizeBucket)
}

func bucketSize(size, bucket float64) float64 {
	if bucket <= 0 {
		return size
	}
	return float64(int(size/bucket)) * bucket
}

// SizesAboveBody returns the distinct sizes strictly greater than the body
// font size, largest first
func (s *StyleProfile) SizesAboveBody() []float64 {
	var above []float64
	for _, size := range s.DistinctSizes {
		if size > s.BodyFontSize {
			above = append(above, size)
		}
	}
	return above
}

// SizeRank returns the 0-based rank of a bucketed size among the sizes
// larger than body text (0 = largest). Returns -1 for body-sized or smaller
// fragments.
func (s *StyleProfile) SizeRank(size float64) int {
	if size <= s.BodyFontSize {
		return -1
	}
	rank := 0
	for _, distinct := range s.DistinctSizes {
		if distinct <= s.BodyFontSize {
			break
		}
		if distinct <= size {
			return rank
		}
		rank++
	}
	return -1
}
