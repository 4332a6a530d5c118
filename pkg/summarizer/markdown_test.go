package summarizer

import (
	"strings"
	"testing"
	"time"
)

func TestMarkdownFormatter_Format_Mask(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Mode:        "mask",
		InputDir:    "/in",
		OutputDir:   "/out",
		Settings: Settings{
			VideoCodec:        "libx264",
			CRF:               18,
			IntermediateCodec: "mpeg4",
			OnError:           "abort",
			Jobs:              1,
		},
		Totals: Totals{Total: 2, Processed: 1, Failed: 1, Elapsed: 12500 * time.Millisecond},
		Files: []FileEntry{
			{
				Input: "/in/a.mp4", Output: "/out/a.mp4", OK: true,
				Width: 1280, Height: 720, Frames: 300, FramesWithRegions: 40, Regions: 41,
				FileSize: 3 * 1024 * 1024, Elapsed: 10 * time.Second,
			},
			{Input: "/in/b.mp4", Output: "/out/b.mp4", Error: "cannot open video: /in/b.mp4", Stage: "mask"},
		},
	}

	result := formatter.Format(summary)

	checks := []string{
		"# Batch Summary",
		"2024-01-15T10:30:00Z",
		"| Mode | mask |",
		"| Intermediate Codec | mpeg4 |",
		"| CRF | 18 |",
		"| 2 | 1 | 1 | 0 | 12.50 s |",
		"1280x720",
		"300 (40 masked)",
		"3.00 MB",
		"## Errors",
		"- `/in/b.mp4` (mask): cannot open video: /in/b.mp4",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
	if strings.Contains(result, "Cut End") {
		t.Error("mask summary should not list trim settings")
	}
}

func TestMarkdownFormatter_Format_Trim(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := &Summary{
		GeneratedAt: time.Now(),
		Mode:        "trim",
		Settings:    Settings{CutEnd: 4200 * time.Millisecond},
		Totals:      Totals{Total: 1, Processed: 1},
		Files: []FileEntry{{
			Input: "/in/a.mp4", OK: true,
			SourceDuration: 10 * time.Second, Duration: 5800 * time.Millisecond, FileSize: 512,
		}},
	}

	result := formatter.Format(summary)

	for _, check := range []string{"| Cut Start | 0.00 s |", "| Cut End | 4.20 s |", "10.00 s", "5.80 s", "512 B"} {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
	if strings.Contains(result, "## Errors") {
		t.Error("no errors section expected")
	}
}

func TestMarkdownFormatter_Format_Empty(t *testing.T) {
	result := NewMarkdownFormatter().Format(&Summary{GeneratedAt: time.Now(), Mode: "mask"})

	if !strings.Contains(result, "No video files found.") {
		t.Errorf("expected empty notice\n%s", result)
	}
	if strings.Contains(result, "## Files") {
		t.Error("no file table expected")
	}
}

func TestMarkdownFormatter_Status(t *testing.T) {
	tests := []struct {
		name  string
		entry FileEntry
		want  string
	}{
		{"ok", FileEntry{OK: true}, "OK"},
		{"failed", FileEntry{}, "Failed"},
		{"truncated", FileEntry{OK: true, Truncated: true}, "Warning"},
		{"mismatch", FileEntry{OK: true, VerifyMismatch: true}, "Warning"},
	}

	formatter := NewMarkdownFormatter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatter.status(tt.entry); got != tt.want {
				t.Errorf("status = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Batch Summary": "バッチサマリー",
			"Mode":          "モード",
			"Failed":        "失敗",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	formatter := NewMarkdownFormatter(WithTranslator(translator))

	summary := &Summary{
		GeneratedAt: time.Now(),
		Mode:        "mask",
		Totals:      Totals{Total: 1, Failed: 1},
		Files:       []FileEntry{{Input: "/in/a.mp4", Error: "boom"}},
	}

	result := formatter.Format(summary)

	for _, check := range []string{"# バッチサマリー", "| モード | mask |", "| 失敗 |"} {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "-"},
		{100, "100 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
