package layout

import (
	"testing"

	"github.com/tsawler/contour/model"
	"github.com/tsawler/contour/text"
)

func TestDetectPrefersMetadataTitle(t *testing.T) {
	d := NewTitleDetector()
	pageZero := []text.TextFragment{
		makeFragment("Something Large On The Page", 0, 0, 24, 700),
	}
	meta := model.Metadata{Title: "Understanding Market Cycles"}

	result := d.Detect(pageZero, testPageHeight, meta, "report.pdf")
	if result.Title != "Understanding Market Cycles" {
		t.Errorf("title = %q, want metadata title", result.Title)
	}
	// Metadata titles consume no page content
	if len(result.LineIDs) != 0 {
		t.Errorf("metadata title consumed %d lines, want 0", len(result.LineIDs))
	}
}

func TestDetectRejectsPlaceholderMetadata(t *testing.T) {
	d := NewTitleDetector()
	pageZero := []text.TextFragment{
		makeFragment("The Real Document Title", 0, 0, 24, 700),
		makeFragment("Body text at normal size", 0, 1, 12, 600),
	}

	tests := []struct {
		name      string
		metaTitle string
		filename  string
	}{
		{"empty", "", "annual_report.pdf"},
		{"too short", "doc", "annual_report.pdf"},
		{"equals filename stem", "report", "report.pdf"},
		{"equals humanized stem", "Annual Report", "annual_report.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := model.Metadata{Title: tt.metaTitle}
			result := d.Detect(pageZero, testPageHeight, meta, tt.filename)
			if result.Title != "The Real Document Title" {
				t.Errorf("title = %q, want content title", result.Title)
			}
		})
	}
}

func TestDetectContentTitleTopThird(t *testing.T) {
	// The largest text in the top third of page 0 is the title; large
	// text lower on the page is not.
	d := NewTitleDetector()
	pageZero := []text.TextFragment{
		makeFragment("Quarterly Performance Review", 0, 0, 22, 740),
		makeFragment("Prepared by the finance team", 0, 1, 11, 700),
		makeFragment("Huge Pull Quote Further Down", 0, 2, 28, 300),
	}

	result := d.Detect(pageZero, testPageHeight, model.Metadata{}, "q3.pdf")
	if result.Title != "Quarterly Performance Review" {
		t.Errorf("title = %q, want %q", result.Title, "Quarterly Performance Review")
	}
	if !result.LineIDs[0] {
		t.Error("title line not marked as consumed")
	}
	if result.LineIDs[1] {
		t.Error("non-title line marked as consumed")
	}
}

func TestDetectMergesAdjacentTitleLines(t *testing.T) {
	d := NewTitleDetector()
	pageZero := []text.TextFragment{
		makeFragment("Understanding the Behavior of", 0, 0, 22, 740),
		makeFragment("Distributed Storage Systems", 0, 1, 22, 710),
		makeFragment("A technical overview", 0, 2, 12, 680),
	}

	result := d.Detect(pageZero, testPageHeight, model.Metadata{}, "paper.pdf")
	want := "Understanding the Behavior of Distributed Storage Systems"
	if result.Title != want {
		t.Errorf("title = %q, want %q", result.Title, want)
	}
	if len(result.LineIDs) != 2 {
		t.Errorf("consumed %d lines, want 2", len(result.LineIDs))
	}
}

func TestDetectSkipsBoilerplate(t *testing.T) {
	// Symbolic lines and noise words never become the title, whatever
	// their size.
	d := NewTitleDetector()
	pageZero := []text.TextFragment{
		makeFragment("Copyright 2024 Acme Corp", 0, 0, 26, 760),
		makeFragment("Field Operations Manual", 0, 1, 20, 720),
	}

	result := d.Detect(pageZero, testPageHeight, model.Metadata{}, "manual.pdf")
	if result.Title != "Field Operations Manual" {
		t.Errorf("title = %q, want %q", result.Title, "Field Operations Manual")
	}
}

func TestDetectEmptyWhenNothingQualifies(t *testing.T) {
	d := NewTitleDetector()

	tests := []struct {
		name     string
		pageZero []text.TextFragment
	}{
		{"no fragments", nil},
		{"only symbolic content", []text.TextFragment{
			makeFragment("17", 0, 0, 30, 740),
		}},
		{"nothing in top third", []text.TextFragment{
			makeFragment("Large Text Near The Bottom", 0, 0, 30, 100),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := d.Detect(tt.pageZero, testPageHeight, model.Metadata{}, "scan.pdf")
			if result.Title != "" {
				t.Errorf("title = %q, want empty", result.Title)
			}
		})
	}
}

func TestConsumed(t *testing.T) {
	result := TitleResult{LineIDs: map[int]bool{3: true}}
	if !result.Consumed(makeFragment("Title Line", 0, 3, 22, 740)) {
		t.Error("consumed line not reported")
	}
	if result.Consumed(makeFragment("Other Line", 0, 4, 12, 700)) {
		t.Error("unconsumed line reported as consumed")
	}
}

func TestHumanizeStem(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"annual_report-2024.pdf", "Annual Report 2024"},
		{"/data/in/white-paper.pdf", "White Paper"},
		{"simple.pdf", "Simple"},
		{"", ""},
		{".", ""},
		{"/", ""},
	}

	for _, tt := range tests {
		if got := HumanizeStem(tt.input); got != tt.expected {
			t.Errorf("HumanizeStem(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
