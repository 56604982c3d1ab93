package reader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("/does/not/exist.pdf")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, ErrParseFailure) {
		t.Errorf("error = %v, want ErrParseFailure", err)
	}
}

func TestOpenInvalidPDF(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"empty file", nil},
		{"plain text", []byte("not a pdf at all")},
		{"truncated header", []byte("%PDF-1.7\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "bad.pdf")
			if err := os.WriteFile(path, tt.content, 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := Open(path)
			if err == nil {
				t.Fatal("expected error for invalid PDF")
			}
			if !errors.Is(err, ErrParseFailure) {
				t.Errorf("error = %v, want ErrParseFailure", err)
			}
		})
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	r := &Reader{}
	if err := r.Close(); err != nil {
		t.Errorf("Close on empty reader = %v, want nil", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}
