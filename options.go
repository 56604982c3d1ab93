package contour

import (
	"github.com/tsawler/contour/layout"
	"github.com/tsawler/contour/text"
)

// Options aggregates the tunable configuration of every pipeline stage
type Options struct {
	// Merge controls run-to-line merging in the normalizer
	Merge text.MergeConfig

	// Noise controls repeated header/footer suppression
	Noise layout.NoiseConfig

	// Profiler controls body font size election
	Profiler layout.ProfilerConfig

	// Title controls title detection
	Title layout.TitleConfig

	// Classifier holds the heading rule weights and thresholds
	Classifier layout.ClassifierConfig
}

// DefaultOptions returns the calibrated default configuration for all
// stages
func DefaultOptions() Options {
	return Options{
		Merge:      text.DefaultMergeConfig(),
		Noise:      layout.DefaultNoiseConfig(),
		Profiler:   layout.DefaultProfilerConfig(),
		Title:      layout.DefaultTitleConfig(),
		Classifier: layout.DefaultClassifierConfig(),
	}
}
