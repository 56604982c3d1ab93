// Package model defines the shared data types for outline extraction:
// the bounding-box geometry primitive, document metadata, and the final
// outline structures serialized to JSON.
package model
