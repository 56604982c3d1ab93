package text

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t\n ", ""},
		{"collapses internal runs", "Hello   \t world", "Hello world"},
		{"trims edges", "  Introduction  ", "Introduction"},
		{"nfkc normalizes ligature", "eﬃcient", "efficient"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanHeading(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Introduction 12", "Introduction"},
		{"Results.", "Results"},
		{"Background...", "Background"},
		{"2.3 Results", "2.3 Results"},
		{"Summary   7 ", "Summary"},
	}

	for _, tt := range tests {
		if got := CleanHeading(tt.input); got != tt.expected {
			t.Errorf("CleanHeading(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsBoldFont(t *testing.T) {
	tests := []struct {
		font     string
		expected bool
	}{
		{"Helvetica-Bold", true},
		{"Arial-BoldMT", true},
		{"Roboto-Black", true},
		{"OpenSans-SemiBold", true},
		{"Futura-Heavy", true},
		{"Helvetica", false},
		{"Times-Italic", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsBoldFont(tt.font); got != tt.expected {
			t.Errorf("IsBoldFont(%q) = %v, want %v", tt.font, got, tt.expected)
		}
	}
}

func TestIsItalicFont(t *testing.T) {
	tests := []struct {
		font     string
		expected bool
	}{
		{"Times-Italic", true},
		{"Helvetica-Oblique", true},
		{"Times-BoldItalic", true},
		{"Helvetica-Bold", false},
		{"Courier", false},
	}

	for _, tt := range tests {
		if got := IsItalicFont(tt.font); got != tt.expected {
			t.Errorf("IsItalicFont(%q) = %v, want %v", tt.font, got, tt.expected)
		}
	}
}

func TestNormalizeForComparison(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Page 3", "Page #"},
		{"Page 17", "Page #"},
		{"3 of 10", "# of #"},
		{"Annual Report", "Annual Report"},
	}

	for _, tt := range tests {
		if got := NormalizeForComparison(tt.input); got != tt.expected {
			t.Errorf("NormalizeForComparison(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsSymbolic(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"123", true},
		{"- 4 -", true},
		{"***", true},
		{"Chapter 1", false},
		{"A", false},
	}

	for _, tt := range tests {
		if got := IsSymbolic(tt.input); got != tt.expected {
			t.Errorf("IsSymbolic(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestWordCount(t *testing.T) {
	frag := TextFragment{Text: "An Overview of the Method"}
	if got := frag.WordCount(); got != 5 {
		t.Errorf("WordCount() = %d, want 5", got)
	}

	empty := TextFragment{}
	if got := empty.WordCount(); got != 0 {
		t.Errorf("WordCount() on empty fragment = %d, want 0", got)
	}
}
