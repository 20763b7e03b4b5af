package render

import (
	"fmt"
	"io"
	"transparency/internal/model"

	"github.com/nao1215/markdown"
)

// Markdown renders a GitHub-flavoured Markdown report
type Markdown struct{}

func (Markdown) ContentType() string { return "text/markdown; charset=utf-8" }
func (Markdown) Extension() string   { return "md" }

// Render writes the Markdown for r to w
func (Markdown) Render(w io.Writer, r *model.TransparencyReport) error {
	doc := NewDocument(r)
	md := markdown.NewMarkdown(w)

	md.H1(doc.Title)
	md.PlainTextf("Generated on: %s", doc.GeneratedOn)
	md.PlainText("")

	md.H2("Product Information")
	md.PlainText("")
	rows := make([][]string, 0, len(doc.Fields))
	for _, f := range doc.Fields {
		rows = append(rows, []string{f.Label, f.Value})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Transparency Analysis")
	md.PlainText("")
	md.PlainTextf("**Transparency Score: %d/100**", doc.Score)
	md.PlainText("")
	switch {
	case doc.Score >= 80:
		md.Tip("Assessment: " + doc.Interpretation)
	case doc.Score >= 40:
		md.Note("Assessment: " + doc.Interpretation)
	default:
		md.Warningf("Assessment: %s", doc.Interpretation)
	}
	md.PlainText("")

	if len(doc.Recommendations) > 0 {
		md.H2("Recommendations")
		md.PlainText("")
		for i, rec := range doc.Recommendations {
			md.PlainText(fmt.Sprintf("%d. %s", i+1, rec))
		}
		md.PlainText("")
	}

	md.HorizontalRule()
	md.PlainText("*Scores are a heuristic measure of disclosed information.*")

	return md.Build()
}
