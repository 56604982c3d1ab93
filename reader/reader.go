package reader

import (
	"errors"
	"fmt"
	"os"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/tsawler/contour/model"
	"github.com/tsawler/contour/text"
)

// ErrParseFailure indicates the PDF could not be opened or parsed at all.
// No output should be produced for such a file.
var ErrParseFailure = errors.New("pdf parse failure")

// Default page dimensions (US Letter) used when a page carries no usable
// MediaBox
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Reader provides page-by-page access to the positioned text runs of a
// PDF file
type Reader struct {
	file   *os.File
	reader *pdflib.Reader
	path   string
}

// Open opens a PDF file for extraction. The returned Reader must be closed.
func Open(path string) (*Reader, error) {
	var (
		f   *os.File
		r   *pdflib.Reader
		err error
	)
	func() {
		// The underlying library panics on some malformed files;
		// treat that the same as an open error
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("%w: %s: %v", ErrParseFailure, path, rec)
			}
		}()
		f, r, err = pdflib.Open(path)
	}()
	if err != nil {
		if errors.Is(err, ErrParseFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailure, path, err)
	}

	return &Reader{file: f, reader: r, path: path}, nil
}

// Close releases the underlying file
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// PageCount returns the number of pages in the document
func (r *Reader) PageCount() int {
	return r.reader.NumPage()
}

// Metadata reads the document Info dictionary. Missing or unreadable
// entries yield zero values, never an error.
func (r *Reader) Metadata() model.Metadata {
	var meta model.Metadata
	defer func() {
		_ = recover()
	}()

	info := r.reader.Trailer().Key("Info")
	if info.IsNull() {
		return meta
	}
	meta.Title = info.Key("Title").Text()
	meta.Author = info.Key("Author").Text()
	meta.Subject = info.Key("Subject").Text()
	meta.Creator = info.Key("Creator").Text()
	meta.Producer = info.Key("Producer").Text()
	return meta
}

// Page holds the raw runs and dimensions of one page
type Page struct {
	// Index is the 0-based page index
	Index int

	// Width and Height are the MediaBox dimensions in points
	Width  float64
	Height float64

	// Runs are the positioned text runs in content stream order
	Runs []text.Run
}

// GetPage extracts the runs of a single page. A page the library cannot
// decode returns an error; the caller skips the page and continues.
func (r *Reader) GetPage(index int) (page Page, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d: decode panic: %v", index, rec)
		}
	}()

	p := r.reader.Page(index + 1) // library pages are 1-based
	if p.V.IsNull() {
		return Page{}, fmt.Errorf("page %d: missing page object", index)
	}

	page = Page{Index: index}
	page.Width, page.Height = pageSize(p)

	content := p.Content()
	page.Runs = make([]text.Run, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		page.Runs = append(page.Runs, text.Run{
			Text:     t.S,
			FontName: t.Font,
			FontSize: t.FontSize,
			X:        t.X,
			Y:        t.Y,
			Width:    t.W,
			Height:   t.FontSize,
		})
	}

	return page, nil
}

// pageSize resolves the page MediaBox, falling back to US Letter
func pageSize(p pdflib.Page) (width, height float64) {
	width, height = defaultPageWidth, defaultPageHeight

	mediaBox := p.V.Key("MediaBox")
	if mediaBox.Kind() != pdflib.Array || mediaBox.Len() < 4 {
		return width, height
	}

	w := mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
	h := mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
	if w > 0 && h > 0 {
		width, height = w, h
	}
	return width, height
}
