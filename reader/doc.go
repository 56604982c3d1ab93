// Package reader adapts the third-party PDF library into the text run
// source the extraction pipeline consumes. It isolates the rest of the
// system from the library's API, coordinate quirks, and panics on
// malformed input.
package reader
