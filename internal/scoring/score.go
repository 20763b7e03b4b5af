// Package scoring computes the transparency score of a product and the
// recommendations that go with it. Everything here is pure and safe for
// concurrent use.
package scoring

import (
	"strings"
	"transparency/internal/model"
	"unicode/utf8"
)

const (
	MinScore = 0
	MaxScore = 100

	certificationPoints = 5
	certificationCap    = 20
)

// Rule is one line of the rubric
type Rule struct {
	Name   string
	Points func(p model.ProductData) int
}

// Rubric is the canonical rule table, applied in order
var Rubric = []Rule{
	{Name: "name", Points: minLength(model.FieldName, 2, 10)},
	{Name: "brand", Points: minLength(model.FieldBrand, 2, 10)},
	{Name: "description", Points: minLength(model.FieldDescription, 20, 10)},
	{Name: "category", Points: present(model.FieldCategory, 10)},
	{Name: "ingredients", Points: ingredients},
	{Name: "certifications", Points: certifications},
	{Name: "origin", Points: anyPresent(8, model.FieldCountryOfOrigin, model.FieldManufacturingLocation)},
	{Name: "dates", Points: anyPresent(7, model.FieldManufacturingDate, model.FieldExpiryDate)},
}

// Line is the contribution of one rule to a score
type Line struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
}

// Score returns the transparency score of p in [0,100].
// Missing or wrong-typed fields simply earn nothing.
func Score(p model.ProductData) int {
	total := 0
	for _, r := range Rubric {
		total += r.Points(p)
	}
	return clamp(total)
}

// Breakdown returns the points earned per rule, in rubric order
func Breakdown(p model.ProductData) []Line {
	lines := make([]Line, 0, len(Rubric))
	for _, r := range Rubric {
		lines = append(lines, Line{Rule: r.Name, Points: r.Points(p)})
	}
	return lines
}

// Analyze buckets a score
func Analyze(score int) model.Analysis {
	a := model.Analysis{
		Completeness: model.CompletenessLow,
		TrustLevel:   model.TrustNeedsImprovement,
	}
	switch {
	case score >= 70:
		a.Completeness = model.CompletenessHigh
	case score >= 40:
		a.Completeness = model.CompletenessMedium
	}
	switch {
	case score >= 80:
		a.TrustLevel = model.TrustExcellent
	case score >= 60:
		a.TrustLevel = model.TrustGood
	}
	return a
}

// Interpretation is the label printed next to a score in rendered reports
func Interpretation(score int) string {
	switch {
	case score >= 80:
		return "Excellent transparency"
	case score >= 60:
		return "Good transparency"
	case score >= 40:
		return "Moderate transparency"
	}
	return "Needs improvement"
}

// Certifications returns the real certification entries of p.
// Blank entries and the "None" placeholder are skipped.
func Certifications(p model.ProductData) []string {
	values, ok := p.Strings(model.FieldCertifications)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || strings.EqualFold(v, "none") {
			continue
		}
		out = append(out, v)
	}
	return out
}

func minLength(key string, min, points int) func(model.ProductData) int {
	return func(p model.ProductData) int {
		if utf8.RuneCountInString(p.String(key)) > min {
			return points
		}
		return 0
	}
}

func present(key string, points int) func(model.ProductData) int {
	return func(p model.ProductData) int {
		if p.String(key) != "" {
			return points
		}
		return 0
	}
}

func anyPresent(points int, keys ...string) func(model.ProductData) int {
	return func(p model.ProductData) int {
		for _, k := range keys {
			if p.String(k) != "" {
				return points
			}
		}
		return 0
	}
}

func ingredients(p model.ProductData) int {
	n := utf8.RuneCountInString(p.String(model.FieldIngredients))
	switch {
	case n > 10:
		return 25
	case n > 0:
		return 12
	}
	return 0
}

func certifications(p model.ProductData) int {
	pts := len(Certifications(p)) * certificationPoints
	if pts > certificationCap {
		return certificationCap
	}
	return pts
}

func clamp(n int) int {
	if n < MinScore {
		return MinScore
	}
	if n > MaxScore {
		return MaxScore
	}
	return n
}
