// Package questions selects the follow-up questions shown after the base
// product questions are answered.
package questions

import (
	"context"
	_ "embed"
	"fmt"
	"transparency/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Generator produces follow-up questions for a product's base answers
type Generator interface {
	FollowUps(ctx context.Context, base model.ProductData) ([]model.Question, error)
	Name() string
}

type catalogFile struct {
	Categories map[string][]model.Question `yaml:"categories"`
	Common     []model.Question            `yaml:"common"`
}

// Catalog is the deterministic, local-only generator
type Catalog struct {
	categories map[string][]model.Question
	common     []model.Question
}

// NewCatalog loads the embedded catalog
func NewCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

// MustCatalog is NewCatalog for callers that cannot recover from a broken build
func MustCatalog() *Catalog {
	c, err := NewCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCatalog reads a catalog from YAML
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse question catalog: %w", err)
	}
	for cat, qs := range f.Categories {
		if !model.IsCategory(cat) {
			return nil, fmt.Errorf("question catalog: unknown category %q", cat)
		}
		if err := checkQuestions(qs); err != nil {
			return nil, fmt.Errorf("question catalog %q: %w", cat, err)
		}
	}
	if err := checkQuestions(f.Common); err != nil {
		return nil, fmt.Errorf("question catalog common: %w", err)
	}
	return &Catalog{categories: f.Categories, common: f.Common}, nil
}

func checkQuestions(qs []model.Question) error {
	seen := make(map[string]bool, len(qs))
	for _, q := range qs {
		if q.ID == "" || q.Text == "" {
			return fmt.Errorf("question without id or text")
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if model.ParseQuestionType(string(q.Type)) != q.Type {
			return fmt.Errorf("question %q has unknown type %q", q.ID, q.Type)
		}
		if q.Type.HasOptions() != (len(q.Options) > 0) {
			return fmt.Errorf("question %q: options must be set exactly for select types", q.ID)
		}
	}
	return nil
}

func (c *Catalog) Name() string { return "catalog" }

// FollowUps returns the category questions followed by the common ones. It never fails.
func (c *Catalog) FollowUps(_ context.Context, base model.ProductData) ([]model.Question, error) {
	return c.For(base.Category), nil
}

// For returns a fresh copy of the follow-ups for category
func (c *Catalog) For(category string) []model.Question {
	specific := c.categories[category]
	out := make([]model.Question, 0, len(specific)+len(c.common))
	for _, q := range specific {
		out = append(out, cloneQuestion(q))
	}
	for _, q := range c.common {
		out = append(out, cloneQuestion(q))
	}
	return out
}

func cloneQuestion(q model.Question) model.Question {
	if q.Options != nil {
		q.Options = append([]string(nil), q.Options...)
	}
	return q
}
