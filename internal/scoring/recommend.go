package scoring

import "transparency/internal/model"

// Recommendation texts
const (
	RecMoreDetail         = "Provide more detailed product information to improve transparency"
	RecConsiderCerts      = "Consider obtaining relevant industry certifications"
	RecIngredients        = "Include complete ingredient list for better consumer trust"
	RecObtainCerts        = "Obtain quality certifications relevant to your industry"
	RecSustainability     = "Document and share sustainability initiatives"
	RecHighlightMarketing = "Excellent transparency score! Consider highlighting this in marketing"
	RecCloseCertGap       = "Good transparency level. Focus on missing certifications to improve further"
)

// ingredientCategories must disclose ingredients
var ingredientCategories = map[string]bool{
	model.CategoryFood:         true,
	model.CategoryPersonalCare: true,
}

// Recommend returns improvement suggestions for p at the given score.
// Rules run in a fixed order and are independent; duplicates are kept.
func Recommend(p model.ProductData, score int) []string {
	recs := make([]string, 0, 5)

	if score < 50 {
		recs = append(recs, RecMoreDetail, RecConsiderCerts)
	}
	if ingredientCategories[p.Category] && p.String(model.FieldIngredients) == "" {
		recs = append(recs, RecIngredients)
	}
	if len(Certifications(p)) == 0 {
		recs = append(recs, RecObtainCerts)
	}
	if p.String(model.FieldSustainability) == "" {
		recs = append(recs, RecSustainability)
	}

	switch {
	case score >= 80:
		recs = append(recs, RecHighlightMarketing)
	case score >= 60:
		recs = append(recs, RecCloseCertGap)
	}
	return recs
}
