package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as Markdown.
type MarkdownFormatter struct {
	translate func(string) string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		if fn != nil {
			f.translate = fn
		}
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{translate: func(s string) string { return s }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Batch Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), s.GeneratedAt.Format(time.RFC3339))

	fmt.Fprintf(&b, "## %s\n\n", t("Run"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Mode"), s.Mode)
	fmt.Fprintf(&b, "| %s | %s |\n", t("Input Folder"), s.InputDir)
	fmt.Fprintf(&b, "| %s | %s |\n", t("Output Folder"), s.OutputDir)
	fmt.Fprintf(&b, "| %s | %s |\n", t("Video Codec"), orDash(s.Settings.VideoCodec))
	if s.Settings.CRF > 0 {
		fmt.Fprintf(&b, "| CRF | %d |\n", s.Settings.CRF)
	}
	switch s.Mode {
	case "mask":
		fmt.Fprintf(&b, "| %s | %s |\n", t("Intermediate Codec"), orDash(s.Settings.IntermediateCodec))
	case "trim":
		fmt.Fprintf(&b, "| %s | %s |\n", t("Cut Start"), formatSeconds(s.Settings.CutStart))
		fmt.Fprintf(&b, "| %s | %s |\n", t("Cut End"), formatSeconds(s.Settings.CutEnd))
	}
	fmt.Fprintf(&b, "| %s | %s |\n", t("On Error"), orDash(s.Settings.OnError))
	fmt.Fprintf(&b, "| %s | %d |\n\n", t("Jobs"), max(s.Settings.Jobs, 1))

	fmt.Fprintf(&b, "## %s\n\n", t("Totals"))
	fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n|---|---|---|---|---|\n",
		t("Videos"), t("Processed"), t("Failed"), t("Skipped"), t("Elapsed"))
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %s |\n\n",
		s.Totals.Total, s.Totals.Processed, s.Totals.Failed, s.Totals.Skipped, formatSeconds(s.Totals.Elapsed))

	if len(s.Files) == 0 {
		fmt.Fprintf(&b, "%s\n", t("No video files found."))
		return b.String()
	}

	fmt.Fprintf(&b, "## %s\n\n", t("Files"))
	if s.Mode == "trim" {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n|---|---|---|---|---|---|\n",
			t("File"), t("Status"), t("Source"), t("Kept"), t("Size"), t("Elapsed"))
		for _, e := range s.Files {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				e.Input, f.status(e), formatSeconds(e.SourceDuration), formatSeconds(e.Duration),
				formatBytes(e.FileSize), formatSeconds(e.Elapsed))
		}
	} else {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n|---|---|---|---|---|---|---|\n",
			t("File"), t("Status"), t("Resolution"), t("Frames"), t("Regions"), t("Size"), t("Elapsed"))
		for _, e := range s.Files {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %s | %s |\n",
				e.Input, f.status(e), formatResolution(e.Width, e.Height), f.frames(e),
				e.Regions, formatBytes(e.FileSize), formatSeconds(e.Elapsed))
		}
	}

	var failed []FileEntry
	for _, e := range s.Files {
		if !e.OK {
			failed = append(failed, e)
		}
	}
	if len(failed) > 0 {
		fmt.Fprintf(&b, "\n## %s\n\n", t("Errors"))
		for _, e := range failed {
			if e.Stage != "" {
				fmt.Fprintf(&b, "- `%s` (%s): %s\n", e.Input, e.Stage, e.Error)
				continue
			}
			fmt.Fprintf(&b, "- `%s`: %s\n", e.Input, e.Error)
		}
	}

	return b.String()
}

func (f *MarkdownFormatter) status(e FileEntry) string {
	switch {
	case !e.OK:
		return f.translate("Failed")
	case e.Truncated || e.VerifyMismatch:
		return f.translate("Warning")
	default:
		return f.translate("OK")
	}
}

func (f *MarkdownFormatter) frames(e FileEntry) string {
	if e.Frames == 0 {
		return "-"
	}
	return fmt.Sprintf("%d (%d %s)", e.Frames, e.FramesWithRegions, f.translate("masked"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatResolution(w, h int) string {
	if w == 0 || h == 0 {
		return "-"
	}
	return fmt.Sprintf("%dx%d", w, h)
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2f s", d.Seconds())
}

func formatBytes(n int64) string {
	switch {
	case n <= 0:
		return "-"
	case n >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
