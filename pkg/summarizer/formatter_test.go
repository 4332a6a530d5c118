package summarizer

import (
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestFormatterFor(t *testing.T) {
	tests := []struct {
		path string
		yaml bool
	}{
		{"report.md", false},
		{"report.yaml", true},
		{"out/REPORT.YML", true},
		{"report", false},
	}

	for _, tt := range tests {
		_, isYAML := FormatterFor(tt.path, nil).(YAMLFormatter)
		if isYAML != tt.yaml {
			t.Errorf("FormatterFor(%q) yaml = %v, want %v", tt.path, isYAML, tt.yaml)
		}
	}
}

func TestYAMLFormatter(t *testing.T) {
	summary := &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Mode:        "trim",
		InputDir:    "/in",
		OutputDir:   "/out",
		Settings:    Settings{VideoCodec: "libx264", CutEnd: 4200 * time.Millisecond, OnError: "continue", Jobs: 1},
		Totals:      Totals{Total: 2, Processed: 1, Failed: 1, Elapsed: 3 * time.Second},
		Files: []FileEntry{
			{Input: "/in/a.mp4", Output: "/out/processed_a.mp4", OK: true, SourceDuration: 10 * time.Second, Duration: 5800 * time.Millisecond},
			{Input: "/in/b.mp4", Output: "/out/processed_b.mp4", Error: "trim stage: empty trim range", Stage: "trim"},
		},
	}

	out := YAMLFormatter{}.Format(summary)

	for _, want := range []string{
		"mode: trim",
		"cut_end: 4.2s",
		"duration: 5.8s",
		"stage: trim",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "intermediate_codec") {
		t.Error("empty settings should be omitted")
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	files, ok := doc["files"].([]interface{})
	if !ok || len(files) != 2 {
		t.Errorf("expected 2 file entries, got %v", doc["files"])
	}
}
