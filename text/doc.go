// Package text normalizes raw positioned text runs from the PDF source into
// line-level fragments: runs sharing a baseline are merged, text is
// unicode-normalized and cleaned, and per-line metrics (dominant font,
// bounding box, style flags) are attached.
package text
