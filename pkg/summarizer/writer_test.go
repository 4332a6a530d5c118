package summarizer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports", "summary.md")

	w := NewWriter(FormatFunc(func(s *Summary) string { return "mode=" + s.Mode }))

	if err := w.Write(path, &Summary{Mode: "mask"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "mode=mask" {
		t.Errorf("unexpected content %q", data)
	}

	// Rewriting replaces the file and leaves no temporaries behind.
	if err := w.Write(path, &Summary{Mode: "trim"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "mode=trim" {
		t.Errorf("unexpected content %q", data)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the report, got %d entries", len(entries))
	}
}
