package model

import "time"

// Completeness buckets a score by how much was disclosed
type Completeness string

const (
	CompletenessHigh   Completeness = "High"
	CompletenessMedium Completeness = "Medium"
	CompletenessLow    Completeness = "Low"
)

// TrustLevel buckets a score for display
type TrustLevel string

const (
	TrustExcellent        TrustLevel = "Excellent"
	TrustGood             TrustLevel = "Good"
	TrustNeedsImprovement TrustLevel = "Needs Improvement"
)

// Analysis summarises a score
type Analysis struct {
	Completeness Completeness `json:"completeness" bson:"completeness"`
	TrustLevel   TrustLevel   `json:"trustLevel" bson:"trustLevel"`
}

// TransparencyReport is the immutable result of scoring one product
type TransparencyReport struct {
	ID              string      `json:"id"`
	ProductID       string      `json:"productId,omitempty"`
	Score           int         `json:"score"`
	ProductData     ProductData `json:"productData"`
	Recommendations []string    `json:"recommendations"`
	Analysis        Analysis    `json:"analysis"`
	Timestamp       time.Time   `json:"timestamp"`
}

// ReportRecord is a persisted report
type ReportRecord struct {
	ID        string              `json:"id"`
	ProductID string              `json:"productId,omitempty"`
	UserID    string              `json:"userId,omitempty"`
	Report    *TransparencyReport `json:"report"`
	CreatedAt time.Time           `json:"createdAt"`
}

// ReportFormat selects the rendered document type
type ReportFormat string

const (
	FormatPDF      ReportFormat = "pdf"
	FormatMarkdown ReportFormat = "md"
)

// ParseReportFormat defaults to PDF
func ParseReportFormat(s string) ReportFormat {
	switch s {
	case "md", "markdown":
		return FormatMarkdown
	}
	return FormatPDF
}

// AnalyzeRequest is the request body for scoring and report generation
type AnalyzeRequest struct {
	ProductData ProductData `json:"productData"`
	ProductID   string      `json:"productId,omitempty"`
}

// AnalyzeResponse is returned by the analyze endpoint
type AnalyzeResponse struct {
	Success           bool     `json:"success"`
	TransparencyScore int      `json:"transparencyScore"`
	Recommendations   []string `json:"recommendations"`
	Analysis          Analysis `json:"analysis"`
}
