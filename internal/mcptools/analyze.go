// Package mcptools exposes product scoring and follow-up questions as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"transparency/internal/model"
	"transparency/internal/scoring"

	"github.com/mark3labs/mcp-go/mcp"
)

// AnalyzeTool handles the analyze_product MCP tool.
type AnalyzeTool struct{}

// NewAnalyzeTool creates an AnalyzeTool.
func NewAnalyzeTool() *AnalyzeTool {
	return &AnalyzeTool{}
}

// Definition returns the MCP tool definition for analyze_product.
func (t *AnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_product",
		mcp.WithDescription(
			"Score how transparent a product disclosure is (0-100) and suggest what to disclose next. "+
				"Pass the product answers as one flat JSON object.",
		),
		mcp.WithString("product_json",
			mcp.Required(),
			mcp.Description(`Product answers, e.g. {"name":"Oat Bar","brand":"GoodCo","category":"Food & Beverage","description":"...","ingredients":"oats, honey"}`),
		),
	)
}

// Handle processes the analyze_product tool call.
func (t *AnalyzeTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("product_json", "")
	if strings.TrimSpace(raw) == "" {
		return mcp.NewToolResultError("'product_json' is required"), nil
	}

	var data model.ProductData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("'product_json' is not a JSON object: %v", err)), nil
	}
	if err := data.Validate(); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return mcp.NewToolResultError(verr.Error()), nil
		}
		return nil, err
	}

	score := scoring.Score(data)
	analysis := scoring.Analyze(score)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", data.Name)
	fmt.Fprintf(&b, "Transparency score: %d/100 (%s)\n", score, scoring.Interpretation(score))
	fmt.Fprintf(&b, "Completeness: %s\nTrust level: %s\n\n", analysis.Completeness, analysis.TrustLevel)

	b.WriteString("## Breakdown\n")
	for _, line := range scoring.Breakdown(data) {
		fmt.Fprintf(&b, "- %s: %d\n", line.Rule, line.Points)
	}

	b.WriteString("\n## Recommendations\n")
	for i, rec := range scoring.Recommend(data, score) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}

	return mcp.NewToolResultText(b.String()), nil
}
