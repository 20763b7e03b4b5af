package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"transparency/internal/model"
	"transparency/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

// QuestionsTool handles the generate_questions MCP tool.
type QuestionsTool struct {
	selector service.QuestionSelector
}

// NewQuestionsTool creates a QuestionsTool backed by selector.
func NewQuestionsTool(selector service.QuestionSelector) *QuestionsTool {
	return &QuestionsTool{selector: selector}
}

// Definition returns the MCP tool definition for generate_questions.
func (t *QuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_questions",
		mcp.WithDescription("Follow-up questions to ask about a product after its name, brand, category and description are known."),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("One of: "+joinCategories()),
		),
		mcp.WithString("name",
			mcp.Description("Product name"),
		),
		mcp.WithString("brand",
			mcp.Description("Brand name"),
		),
		mcp.WithString("description",
			mcp.Description("Short product description"),
		),
	)
}

// Handle processes the generate_questions tool call.
func (t *QuestionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")
	if category == "" {
		return mcp.NewToolResultError("'category' is required"), nil
	}
	if !model.IsCategory(category) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown category %q; use one of: %s", category, joinCategories())), nil
	}

	base := model.ProductData{
		Name:        req.GetString("name", ""),
		Brand:       req.GetString("brand", ""),
		Category:    category,
		Description: req.GetString("description", ""),
	}

	out, err := json.MarshalIndent(t.selector.Select(ctx, base), "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(out)), nil
}

func joinCategories() string {
	return strings.Join(model.Categories, ", ")
}
