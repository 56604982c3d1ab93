// Package contour extracts a structured outline (title plus H1/H2/H3
// headings with page numbers) from a PDF document.
//
// Basic usage:
//
//	doc, warnings, err := contour.Open("document.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", contour.FormatWarnings(warnings))
//	}
//
// Classification is heuristic: a document-wide style profile establishes
// the body text baseline, and an ordered set of weighted rules (font size
// rank, boldness, numbering patterns, whitespace isolation) assigns levels.
// The lower-level layout and text packages are available for advanced use.
package contour

import (
	"context"
	"fmt"

	"github.com/tsawler/contour/layout"
	"github.com/tsawler/contour/model"
	"github.com/tsawler/contour/reader"
	"github.com/tsawler/contour/text"
)

// Warning reports a non-fatal issue encountered during extraction, such as
// a page that could not be decoded. Extraction succeeded but results may
// be incomplete.
type Warning struct {
	// Page is the 0-based page index, or -1 for document-level warnings
	Page int

	// Message describes the issue
	Message string
}

// String returns a human-readable form of the warning
func (w Warning) String() string {
	if w.Page < 0 {
		return w.Message
	}
	return fmt.Sprintf("page %d: %s", w.Page, w.Message)
}

// FormatWarnings joins warnings into a single semicolon-separated string
func FormatWarnings(warnings []Warning) string {
	out := ""
	for i, w := range warnings {
		if i > 0 {
			out += "; "
		}
		out += w.String()
	}
	return out
}

// Extractor is a fluent handle for configuring and running outline
// extraction on a single file
type Extractor struct {
	filename string
	options  Options
}

// Open prepares an extractor for a PDF file with default options
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  DefaultOptions(),
	}
}

// WithOptions returns a new Extractor using the given options
func (e *Extractor) WithOptions(options Options) *Extractor {
	return &Extractor{
		filename: e.filename,
		options:  options,
	}
}

// Outline extracts the document outline. Returns the outline document,
// any page-level warnings, and an error when the file could not be parsed
// at all (reader.ErrParseFailure).
func (e *Extractor) Outline() (*model.OutlineDocument, []Warning, error) {
	return e.OutlineContext(context.Background())
}

// OutlineContext is Outline with cancellation. The context is checked
// between pages; an expired context abandons the file and returns the
// context error.
func (e *Extractor) OutlineContext(ctx context.Context) (*model.OutlineDocument, []Warning, error) {
	r, err := reader.Open(e.filename)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	meta := r.Metadata()
	merger := text.NewMergerWithConfig(e.options.Merge)

	var (
		pages    []layout.PageFragments
		warnings []Warning
		nextLine int
	)
	for i := 0; i < r.PageCount(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, warnings, err
		}

		page, err := r.GetPage(i)
		if err != nil {
			warnings = append(warnings, Warning{Page: i, Message: err.Error()})
			continue
		}

		fragments := merger.MergePage(page.Runs, i, nextLine)
		nextLine += len(fragments)

		pages = append(pages, layout.PageFragments{
			Page:      i,
			Width:     page.Width,
			Height:    page.Height,
			Fragments: fragments,
		})
	}

	noise := layout.NewNoiseDetectorWithConfig(e.options.Noise).Detect(pages)
	fragments := noise.Filter(pages)

	if len(fragments) == 0 {
		// No extractable text is a valid (empty) document
		return model.NewOutlineDocument(""), warnings, nil
	}

	profile := layout.NewStyleProfilerWithConfig(e.options.Profiler).Profile(fragments)

	var pageZero []text.TextFragment
	pageZeroHeight := 0.0
	for _, frag := range fragments {
		if frag.Page == 0 {
			pageZero = append(pageZero, frag)
		}
	}
	if len(pages) > 0 && pages[0].Page == 0 {
		pageZeroHeight = pages[0].Height
	}

	title := layout.NewTitleDetectorWithConfig(e.options.Title).
		Detect(pageZero, pageZeroHeight, meta, e.filename)

	// Title fragments are excluded so the title is never double-counted
	// as an H1
	candidates := make([]text.TextFragment, 0, len(fragments))
	for _, frag := range fragments {
		if title.Consumed(frag) {
			continue
		}
		candidates = append(candidates, frag)
	}

	classified := layout.NewHeadingClassifierWithConfig(e.options.Classifier).
		Classify(candidates, profile)

	doc := model.NewOutlineDocument(title.Title)
	doc.Outline = layout.NewAssembler().Assemble(classified)
	return doc, warnings, nil
}
