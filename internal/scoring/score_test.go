package scoring

import (
	"reflect"
	"testing"
	"transparency/internal/model"
)

func baseProduct() model.ProductData {
	return model.ProductData{
		Name:        "Oat Bar",
		Brand:       "BrandX",
		Category:    model.CategoryFood,
		Description: "A tasty oat snack bar",
	}
}

func TestScoreBaseFieldsOnly(t *testing.T) {
	t.Parallel()

	if got := Score(baseProduct()); got != 40 {
		t.Errorf("Score(base) = %d, want 40", got)
	}
}

func TestScoreEmpty(t *testing.T) {
	t.Parallel()

	if got := Score(model.ProductData{}); got != 0 {
		t.Errorf("Score(empty) = %d, want 0", got)
	}
}

func TestScoreEndToEnd(t *testing.T) {
	t.Parallel()

	p := baseProduct()
	p.Set(model.FieldIngredients, "oats, honey, salt, almonds, cinnamon")
	p.Set(model.FieldCertifications, []any{"ISO 9001", "FDA Approved"})
	p.Set(model.FieldCountryOfOrigin, "USA")

	score := Score(p)
	if score != 83 {
		t.Fatalf("Score = %d, want 83", score)
	}
	a := Analyze(score)
	if a.Completeness != model.CompletenessHigh {
		t.Errorf("completeness = %s, want High", a.Completeness)
	}
	if a.TrustLevel != model.TrustExcellent {
		t.Errorf("trustLevel = %s, want Excellent", a.TrustLevel)
	}
}

func TestScoreRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		extra map[string]any
		want  int
	}{
		{"short ingredients", map[string]any{model.FieldIngredients: "oats"}, 52},
		{"long ingredients", map[string]any{model.FieldIngredients: "oats and honey"}, 65},
		{"one certification", map[string]any{model.FieldCertifications: []string{"ISO"}}, 45},
		{"certification cap", map[string]any{model.FieldCertifications: []string{"A", "B", "C", "D", "E", "F"}}, 60},
		{"none placeholder", map[string]any{model.FieldCertifications: []string{"None"}}, 40},
		{"certifications wrong type", map[string]any{model.FieldCertifications: "ISO"}, 40},
		{"manufacturing location", map[string]any{model.FieldManufacturingLocation: "Lyon"}, 48},
		{"expiry date", map[string]any{model.FieldExpiryDate: "2027-01-01"}, 47},
		{"both dates count once", map[string]any{model.FieldExpiryDate: "2027-01-01", model.FieldManufacturingDate: "2026-01-01"}, 47},
		{"ingredients wrong type", map[string]any{model.FieldIngredients: 12}, 40},
		{"sustainability not scored", map[string]any{model.FieldSustainability: "solar plant"}, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := baseProduct()
			for k, v := range tt.extra {
				p.Set(k, v)
			}
			if got := Score(p); got != tt.want {
				t.Errorf("Score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreCountsRunes(t *testing.T) {
	t.Parallel()

	p := model.ProductData{Name: "Öl"}
	if got := Score(p); got != 0 {
		t.Errorf("two-rune name scored %d", got)
	}
	p.Name = "Ölé"
	if got := Score(p); got != 10 {
		t.Errorf("three-rune name scored %d, want 10", got)
	}
}

func TestScoreMonotonicAndBounded(t *testing.T) {
	t.Parallel()

	steps := []struct {
		key   string
		value any
	}{
		{model.FieldIngredients, "oats"},
		{model.FieldIngredients, "oats, honey, salt"},
		{model.FieldCertifications, []string{"ISO"}},
		{model.FieldCertifications, []string{"ISO", "FDA", "CE", "Fair Trade", "Eco"}},
		{model.FieldCountryOfOrigin, "USA"},
		{model.FieldManufacturingDate, "2026-01-01"},
		{model.FieldSustainability, "recycled packaging"},
		{"organic", true},
	}

	p := baseProduct()
	prev := Score(p)
	for _, s := range steps {
		p.Set(s.key, s.value)
		got := Score(p)
		if got < prev {
			t.Fatalf("adding %s lowered score %d -> %d", s.key, prev, got)
		}
		if got > MaxScore {
			t.Fatalf("score %d exceeds %d", got, MaxScore)
		}
		prev = got
	}
	if prev != 100 {
		t.Errorf("fully populated score = %d, want 100", prev)
	}
}

func TestBreakdownSumsToScore(t *testing.T) {
	t.Parallel()

	p := baseProduct()
	p.Set(model.FieldIngredients, "oats")
	p.Set(model.FieldCountryOfOrigin, "USA")

	sum := 0
	for _, l := range Breakdown(p) {
		sum += l.Points
	}
	if sum != Score(p) {
		t.Errorf("breakdown sum %d != score %d", sum, Score(p))
	}
}

func TestAnalyzeBuckets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score        int
		completeness model.Completeness
		trust        model.TrustLevel
		label        string
	}{
		{0, model.CompletenessLow, model.TrustNeedsImprovement, "Needs improvement"},
		{39, model.CompletenessLow, model.TrustNeedsImprovement, "Needs improvement"},
		{40, model.CompletenessMedium, model.TrustNeedsImprovement, "Moderate transparency"},
		{60, model.CompletenessMedium, model.TrustGood, "Good transparency"},
		{70, model.CompletenessHigh, model.TrustGood, "Good transparency"},
		{80, model.CompletenessHigh, model.TrustExcellent, "Excellent transparency"},
		{100, model.CompletenessHigh, model.TrustExcellent, "Excellent transparency"},
	}

	for _, tt := range tests {
		a := Analyze(tt.score)
		if a.Completeness != tt.completeness || a.TrustLevel != tt.trust {
			t.Errorf("Analyze(%d) = %+v", tt.score, a)
		}
		if got := Interpretation(tt.score); got != tt.label {
			t.Errorf("Interpretation(%d) = %q, want %q", tt.score, got, tt.label)
		}
	}
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	full := baseProduct()
	full.Set(model.FieldIngredients, "oats, honey, salt")
	full.Set(model.FieldCertifications, []string{"ISO"})
	full.Set(model.FieldSustainability, "solar")

	tests := []struct {
		name  string
		data  model.ProductData
		score int
		want  []string
	}{
		{
			name:  "empty low score",
			data:  model.ProductData{},
			score: 0,
			want:  []string{RecMoreDetail, RecConsiderCerts, RecObtainCerts, RecSustainability},
		},
		{
			name:  "food without ingredients",
			data:  baseProduct(),
			score: 40,
			want:  []string{RecMoreDetail, RecConsiderCerts, RecIngredients, RecObtainCerts, RecSustainability},
		},
		{
			name:  "good band",
			data:  full,
			score: 65,
			want:  []string{RecCloseCertGap},
		},
		{
			name:  "excellent band",
			data:  full,
			score: 85,
			want:  []string{RecHighlightMarketing},
		},
		{
			name: "electronics does not need ingredients",
			data: model.ProductData{
				Name: "Phone", Brand: "Acme", Category: model.CategoryElectronics, Description: "d",
				Extra: map[string]any{model.FieldCertifications: []any{"None"}},
			},
			score: 55,
			want:  []string{RecObtainCerts, RecSustainability},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Recommend(tt.data, tt.score); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recommend() =\n%v\nwant\n%v", got, tt.want)
			}
		})
	}
}

func TestRecommendGuarantees(t *testing.T) {
	t.Parallel()

	for score := 0; score <= 100; score++ {
		recs := Recommend(baseProduct(), score)
		if score < 50 && len(recs) == 0 {
			t.Fatalf("score %d produced no recommendations", score)
		}
		if score >= 80 && recs[len(recs)-1] != RecHighlightMarketing {
			t.Fatalf("score %d missing marketing recommendation", score)
		}
	}
}
