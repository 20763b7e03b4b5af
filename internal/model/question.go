package model

// QuestionType defines how a question is answered
type QuestionType string

const (
	QuestionTypeText        QuestionType = "text"
	QuestionTypeSelect      QuestionType = "select"      // one of Options
	QuestionTypeMultiSelect QuestionType = "multiselect" // any subset of Options
	QuestionTypeNumber      QuestionType = "number"
	QuestionTypeBoolean     QuestionType = "boolean"
)

// ParseQuestionType maps free-form input onto a known type, defaulting to text
func ParseQuestionType(s string) QuestionType {
	switch QuestionType(s) {
	case QuestionTypeText, QuestionTypeSelect, QuestionTypeMultiSelect, QuestionTypeNumber, QuestionTypeBoolean:
		return QuestionType(s)
	}
	return QuestionTypeText
}

// HasOptions reports whether questions of this type carry an option list
func (t QuestionType) HasOptions() bool {
	return t == QuestionTypeSelect || t == QuestionTypeMultiSelect
}

// Question is one form prompt. Its ID is the ProductData key the answer is stored under.
type Question struct {
	ID       string       `json:"id" yaml:"id"`
	Text     string       `json:"text" yaml:"text"`
	Type     QuestionType `json:"type" yaml:"type"`
	Options  []string     `json:"options,omitempty" yaml:"options,omitempty"` // select/multiselect only
	Required bool         `json:"required" yaml:"required"`
}

// InitialQuestions returns the base questions every session starts with
func InitialQuestions() []Question {
	return []Question{
		{ID: FieldName, Text: "What is the product name?", Type: QuestionTypeText, Required: true},
		{ID: FieldCategory, Text: "What category does this product belong to?", Type: QuestionTypeSelect, Options: append([]string(nil), Categories...), Required: true},
		{ID: FieldBrand, Text: "What is the brand name?", Type: QuestionTypeText, Required: true},
		{ID: FieldDescription, Text: "Provide a brief product description", Type: QuestionTypeText, Required: true},
	}
}

// IsBaseQuestionID reports whether id belongs to one of the initial questions
func IsBaseQuestionID(id string) bool {
	switch id {
	case FieldName, FieldBrand, FieldCategory, FieldDescription:
		return true
	}
	return false
}

// GenerateQuestionsRequest is the request body for follow-up generation
type GenerateQuestionsRequest struct {
	ProductData ProductData `json:"productData"`
}

// GenerateQuestionsResponse is returned by follow-up generation
type GenerateQuestionsResponse struct {
	Success   bool       `json:"success"`
	Questions []Question `json:"questions"`
}
