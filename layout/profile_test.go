package layout

import (
	"reflect"
	"testing"

	"github.com/tsawler/contour/text"
)

func makeSized(content string, size float64) text.TextFragment {
	return makeFragment(content, 0, 0, size, 400)
}

func TestProfileBodyFontSize(t *testing.T) {
	p := NewStyleProfiler()
	fragments := []text.TextFragment{
		makeSized("Document Title Line", 24),
		makeSized("First paragraph of running body text", 11),
		makeSized("Second paragraph of running body text", 11),
		makeSized("Third paragraph of running body text", 11),
		makeSized("A Heading", 16),
	}

	profile := p.Profile(fragments)
	if profile.BodyFontSize != 11 {
		t.Errorf("BodyFontSize = %v, want 11", profile.BodyFontSize)
	}
}

func TestProfileIgnoresShortFragmentsForBody(t *testing.T) {
	// Page numbers and labels are short; they must not elect the body
	// size even when numerous.
	p := NewStyleProfiler()
	fragments := []text.TextFragment{
		makeSized("1", 9),
		makeSized("2", 9),
		makeSized("3", 9),
		makeSized("4", 9),
		makeSized("Actual body running text here", 12),
		makeSized("More body running text here", 12),
	}

	profile := p.Profile(fragments)
	if profile.BodyFontSize != 12 {
		t.Errorf("BodyFontSize = %v, want 12", profile.BodyFontSize)
	}
}

func TestProfileTieBreaksToSmallest(t *testing.T) {
	p := NewStyleProfiler()
	fragments := []text.TextFragment{
		makeSized("Running text at the smaller size", 10),
		makeSized("Running text at the larger size", 12),
	}

	profile := p.Profile(fragments)
	if profile.BodyFontSize != 10 {
		t.Errorf("BodyFontSize = %v, want 10 (smallest on tie)", profile.BodyFontSize)
	}
}

func TestProfileEmptyInputFallback(t *testing.T) {
	p := NewStyleProfiler()
	profile := p.Profile(nil)
	if profile.BodyFontSize != 12.0 {
		t.Errorf("BodyFontSize = %v, want fallback 12.0", profile.BodyFontSize)
	}
	if len(profile.DistinctSizes) != 0 {
		t.Errorf("DistinctSizes = %v, want empty", profile.DistinctSizes)
	}
}

func TestProfileDistinctSizesDescending(t *testing.T) {
	p := NewStyleProfiler()
	fragments := []text.TextFragment{
		makeSized("Body text paragraph number one", 12),
		makeSized("A Big Heading", 18),
		makeSized("Smaller Heading", 14),
		makeSized("Body text paragraph number two", 12),
	}

	profile := p.Profile(fragments)
	want := []float64{18, 14, 12}
	if !reflect.DeepEqual(profile.DistinctSizes, want) {
		t.Errorf("DistinctSizes = %v, want %v", profile.DistinctSizes, want)
	}
}

func TestBucket(t *testing.T) {
	p := NewStyleProfiler()
	tests := []struct {
		input    float64
		expected float64
	}{
		{12.0, 12.0},
		{12.3, 12.0},
		{12.6, 12.5},
		{11.9, 11.5},
	}

	for _, tt := range tests {
		if got := p.Bucket(tt.input); got != tt.expected {
			t.Errorf("Bucket(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestProfileCarriesBucketPrecision(t *testing.T) {
	p := NewStyleProfiler()
	profile := p.Profile([]text.TextFragment{
		makeSized("Body text running at normal size", 12),
	})

	if profile.SizeBucket != 0.5 {
		t.Errorf("SizeBucket = %v, want 0.5", profile.SizeBucket)
	}
	if got := profile.Bucket(12.3); got != 12.0 {
		t.Errorf("profile Bucket(12.3) = %v, want 12.0", got)
	}

	// A hand-built profile without a bucket width passes sizes through
	raw := makeProfile(12, 18, 12)
	if got := raw.Bucket(12.3); got != 12.3 {
		t.Errorf("unbucketed profile Bucket(12.3) = %v, want 12.3", got)
	}
}

func TestSizeRank(t *testing.T) {
	profile := makeProfile(12, 18, 14, 12, 10)

	tests := []struct {
		size     float64
		expected int
	}{
		{18, 0},
		{14, 1},
		{12, -1},
		{10, -1},
	}

	for _, tt := range tests {
		if got := profile.SizeRank(tt.size); got != tt.expected {
			t.Errorf("SizeRank(%v) = %d, want %d", tt.size, got, tt.expected)
		}
	}
}

func TestSizesAboveBody(t *testing.T) {
	profile := makeProfile(12, 18, 14, 12, 10)
	want := []float64{18, 14}
	if got := profile.SizesAboveBody(); !reflect.DeepEqual(got, want) {
		t.Errorf("SizesAboveBody() = %v, want %v", got, want)
	}
}
