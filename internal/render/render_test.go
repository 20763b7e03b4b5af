package render

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"transparency/internal/model"
	"transparency/internal/scoring"
)

func sampleReport() *model.TransparencyReport {
	data := model.ProductData{
		Name:        "Oat Bar",
		Brand:       "BrandX",
		Category:    model.CategoryFood,
		Description: "A tasty oat snack bar",
		Extra: map[string]any{
			model.FieldIngredients:     "oats, honey, salt, almonds, cinnamon",
			model.FieldCertifications:  []any{"ISO 9001", "FDA Approved"},
			model.FieldCountryOfOrigin: "USA",
			"organic":                  true,
		},
	}
	score := scoring.Score(data)
	return &model.TransparencyReport{
		ID:              "r1",
		Score:           score,
		ProductData:     data,
		Recommendations: scoring.Recommend(data, score),
		Analysis:        scoring.Analyze(score),
		Timestamp:       time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestHumanizeKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"country_of_origin": "COUNTRY OF ORIGIN",
		"name":              "NAME",
		"skin_type":         "SKIN TYPE",
	}
	for in, want := range tests {
		if got := HumanizeKey(in); got != want {
			t.Errorf("HumanizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want string
	}{
		{"plain", "plain"},
		{[]any{"ISO", "CE Mark"}, "ISO, CE Mark"},
		{[]string{"a", "b"}, "a, b"},
		{true, "Yes"},
		{false, "No"},
		{float64(12), "12"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	doc := NewDocument(sampleReport())
	if doc.Score != 83 || doc.Interpretation != "Excellent transparency" {
		t.Errorf("score/interpretation = %d %q", doc.Score, doc.Interpretation)
	}
	if doc.GeneratedOn != "March 14, 2026" {
		t.Errorf("GeneratedOn = %q", doc.GeneratedOn)
	}
	if len(doc.Fields) != 8 {
		t.Fatalf("fields = %d, want 8", len(doc.Fields))
	}
	if doc.Fields[0].Label != "NAME" || doc.Fields[3].Label != "DESCRIPTION" {
		t.Errorf("core fields not first: %+v", doc.Fields[:4])
	}
}

func TestMarkdownRender(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (Markdown{}).Render(&buf, sampleReport()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# Product Transparency Report",
		"COUNTRY OF ORIGIN",
		"ISO 9001, FDA Approved",
		"Transparency Score: 83/100",
		"Excellent transparency",
		"1. " + scoring.RecSustainability,
		"2. " + scoring.RecHighlightMarketing,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
}

func TestPDFRender(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (PDF{}).Render(&buf, sampleReport()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	if got := Filename("Oat Bar", PDF{}); got != "Oat_Bar_transparency_report.pdf" {
		t.Errorf("Filename = %q", got)
	}
	if got := Filename("../", Markdown{}); got != ".._transparency_report.md" {
		t.Errorf("Filename = %q", got)
	}
	if got := Filename("", PDF{}); got != "product_transparency_report.pdf" {
		t.Errorf("Filename = %q", got)
	}
}
