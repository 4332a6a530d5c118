// Package summarizer builds and writes the report of a batch run.
package summarizer

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Formatter renders a Summary as the report file content.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc adapts a plain function to Formatter.
type FormatFunc func(summary *Summary) string

func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// YAMLFormatter renders the Summary for machine consumption. Durations are
// written in time.Duration notation ("5.8s").
type YAMLFormatter struct{}

func (YAMLFormatter) Format(summary *Summary) string {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Sprintf("# summary could not be encoded: %v\n", err)
	}
	return string(data)
}

// FormatterFor chooses the formatter of a report path: YAML for .yaml and
// .yml, Markdown otherwise. translate localizes Markdown labels.
func FormatterFor(path string, translate func(string) string) Formatter {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLFormatter{}
	default:
		return NewMarkdownFormatter(WithTranslator(translate))
	}
}
