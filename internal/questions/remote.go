package questions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"transparency/internal/llm"
	"transparency/internal/model"

	"github.com/tidwall/gjson"
)

// MaxGenerated caps how many model-drafted questions are kept
const MaxGenerated = 5

var (
	ErrNoArray     = errors.New("model reply holds no JSON array")
	ErrNoQuestions = errors.New("model reply holds no usable questions")
)

// Remote drafts follow-ups with a text-generation model
type Remote struct {
	completer llm.Completer
}

// NewRemote creates a generator backed by completer
func NewRemote(completer llm.Completer) *Remote {
	return &Remote{completer: completer}
}

func (r *Remote) Name() string { return r.completer.Name() }

// FollowUps asks the model for questions. Errors are returned as is;
// Selector turns them into the catalog fallback.
func (r *Remote) FollowUps(ctx context.Context, base model.ProductData) ([]model.Question, error) {
	reply, err := r.completer.Complete(ctx, BuildPrompt(base))
	if err != nil {
		return nil, err
	}
	return ParseQuestions(reply)
}

// BuildPrompt embeds the four base answers in the generation prompt
func BuildPrompt(base model.ProductData) string {
	return fmt.Sprintf(`Based on this product information:
- Name: %s
- Category: %s
- Brand: %s
- Description: %s

Generate 3-5 specific follow-up questions that would help assess product transparency, safety, and quality.
Focus on category-specific concerns and regulatory compliance.

Return only a JSON array of question objects with this format:
[{"id": "unique_id", "text": "Question text?", "type": "text|select|multiselect|number|boolean", "options": ["only", "for", "select types"], "required": true}]`,
		base.Name, base.Category, base.Brand, base.Description)
}

// ParseQuestions extracts and normalises the first JSON array in reply
func ParseQuestions(reply string) ([]model.Question, error) {
	raw, ok := extractArray(reply)
	if !ok {
		return nil, ErrNoArray
	}

	seen := make(map[string]bool)
	var out []model.Question
	for i, item := range gjson.Parse(raw).Array() {
		if len(out) == MaxGenerated {
			break
		}
		q, ok := normalize(i, item)
		if !ok {
			continue
		}
		if model.IsBaseQuestionID(q.ID) || seen[q.ID] {
			q.ID = fmt.Sprintf("followup_%d", i)
			if seen[q.ID] {
				continue
			}
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil, ErrNoQuestions
	}
	return out, nil
}

func normalize(i int, item gjson.Result) (model.Question, bool) {
	if !item.IsObject() {
		return model.Question{}, false
	}
	text := strings.TrimSpace(item.Get("text").String())
	if text == "" {
		text = strings.TrimSpace(item.Get("question").String())
	}
	if text == "" {
		return model.Question{}, false
	}

	q := model.Question{
		ID:       strings.TrimSpace(item.Get("id").String()),
		Text:     text,
		Type:     model.ParseQuestionType(item.Get("type").String()),
		Required: item.Get("required").Type != gjson.False,
	}
	if q.ID == "" {
		q.ID = fmt.Sprintf("followup_%d", i)
	}
	if q.Type.HasOptions() {
		for _, o := range item.Get("options").Array() {
			if s := strings.TrimSpace(o.String()); s != "" {
				q.Options = append(q.Options, s)
			}
		}
		if len(q.Options) == 0 {
			q.Type = model.QuestionTypeText
		}
	}
	return q, true
}

// extractArray returns the span from the first '[' to the last ']' if it is valid JSON
func extractArray(s string) (string, bool) {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return "", false
	}
	raw := s[start : end+1]
	if !gjson.Valid(raw) || !gjson.Parse(raw).IsArray() {
		return "", false
	}
	return raw, true
}
