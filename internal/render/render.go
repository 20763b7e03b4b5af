// Package render turns a transparency report into a downloadable document.
package render

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
	"transparency/internal/model"
	"transparency/internal/scoring"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Renderer writes one document format
type Renderer interface {
	Render(w io.Writer, r *model.TransparencyReport) error
	ContentType() string
	Extension() string
}

// For returns the renderer for format
func For(format model.ReportFormat) Renderer {
	if format == model.FormatMarkdown {
		return Markdown{}
	}
	return PDF{}
}

// Field is one humanised key/value line
type Field struct {
	Label string
	Value string
}

// Document is the format-independent content of a report
type Document struct {
	Title           string
	GeneratedOn     string
	Fields          []Field
	Score           int
	Interpretation  string
	Recommendations []string
}

var upper = cases.Upper(language.Und)

// HumanizeKey turns snake_case keys into upper-case labels
func HumanizeKey(key string) string {
	return upper.String(strings.ReplaceAll(key, "_", " "))
}

// FormatValue prints an answer for display
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, FormatValue(item))
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%v", v)
}

// NewDocument lays out r. Every answered key appears, core fields first.
func NewDocument(r *model.TransparencyReport) Document {
	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	d := Document{
		Title:           "Product Transparency Report",
		GeneratedOn:     ts.Format("January 2, 2006"),
		Score:           r.Score,
		Interpretation:  scoring.Interpretation(r.Score),
		Recommendations: r.Recommendations,
	}
	for _, k := range r.ProductData.Keys() {
		d.Fields = append(d.Fields, Field{Label: HumanizeKey(k), Value: FormatValue(r.ProductData.Value(k))})
	}
	return d
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename is the attachment name for a report on the named product
func Filename(productName string, rd Renderer) string {
	base := strings.Trim(unsafeFilename.ReplaceAllString(productName, "_"), "_")
	if base == "" {
		base = "product"
	}
	return base + "_transparency_report." + rd.Extension()
}
