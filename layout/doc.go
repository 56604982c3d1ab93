// Package layout implements the heading classification engine: document-wide
// style profiling, repeated header/footer suppression, title detection,
// weighted-rule heading classification, and outline assembly with nesting
// repair.
package layout
