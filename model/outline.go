package model

import (
	"fmt"
	"time"
)

// OutlineLevel represents the hierarchical level of an outline entry (H1-H3)
type OutlineLevel int

const (
	OutlineLevelUnknown OutlineLevel = iota
	OutlineLevelH1                   // H1 - Major section/chapter
	OutlineLevelH2                   // H2 - Subsection
	OutlineLevelH3                   // H3 - Sub-subsection
)

// String returns the JSON representation of the level
func (l OutlineLevel) String() string {
	switch l {
	case OutlineLevelH1:
		return "H1"
	case OutlineLevelH2:
		return "H2"
	case OutlineLevelH3:
		return "H3"
	default:
		return "unknown"
	}
}

// Depth returns the numeric depth of the level (H1=1, H2=2, H3=3)
func (l OutlineLevel) Depth() int {
	return int(l)
}

// MarshalText implements encoding.TextMarshaler so levels serialize as
// "H1"/"H2"/"H3" in JSON
func (l OutlineLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so emitted JSON can be
// read back
func (l *OutlineLevel) UnmarshalText(data []byte) error {
	switch string(data) {
	case "H1":
		*l = OutlineLevelH1
	case "H2":
		*l = OutlineLevelH2
	case "H3":
		*l = OutlineLevelH3
	default:
		return fmt.Errorf("unknown outline level %q", data)
	}
	return nil
}

// OutlineNode is a single entry in the extracted outline
type OutlineNode struct {
	// Level is the heading level (H1, H2, or H3)
	Level OutlineLevel `json:"level"`

	// Text is the heading text content
	Text string `json:"text"`

	// Page is the 0-based page index the heading appears on
	Page int `json:"page"`
}

// OutlineDocument is the root output entity written per input PDF
type OutlineDocument struct {
	// Title is the detected document title (empty if none was found)
	Title string `json:"title"`

	// Outline is the ordered sequence of headings
	Outline []OutlineNode `json:"outline"`
}

// NewOutlineDocument creates an outline document with a non-nil outline
// slice so empty documents serialize as [] rather than null
func NewOutlineDocument(title string) *OutlineDocument {
	return &OutlineDocument{
		Title:   title,
		Outline: make([]OutlineNode, 0),
	}
}

// NodeCount returns the number of outline entries
func (d *OutlineDocument) NodeCount() int {
	if d == nil {
		return 0
	}
	return len(d.Outline)
}

// IsEmpty returns true if the document has no title and no outline entries
func (d *OutlineDocument) IsEmpty() bool {
	return d == nil || (d.Title == "" && len(d.Outline) == 0)
}

// Metadata contains document-level information read from the PDF Info
// dictionary
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Creator      string
	Producer     string
	CreationDate time.Time
}
