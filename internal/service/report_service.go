package service

import (
	"context"
	"errors"
	"time"
	"transparency/internal/logging"
	"transparency/internal/model"
	"transparency/internal/repository"
	"transparency/internal/scoring"

	"github.com/google/uuid"
)

var ErrReportNotFound = errors.New("report not found")

// ReportService builds transparency reports and keeps the ones made by signed-in users
type ReportService struct {
	reports repository.ReportRepo
}

// NewReportService creates a new report service
func NewReportService(reports repository.ReportRepo) *ReportService {
	return &ReportService{reports: reports}
}

// BuildReport scores data and assembles an immutable report
func BuildReport(data model.ProductData, productID string) (*model.TransparencyReport, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	score := scoring.Score(data)
	return &model.TransparencyReport{
		ID:              uuid.NewString(),
		ProductID:       productID,
		Score:           score,
		ProductData:     data,
		Recommendations: scoring.Recommend(data, score),
		Analysis:        scoring.Analyze(score),
		Timestamp:       time.Now().UTC(),
	}, nil
}

// Generate builds a report and stores it for signed-in users
func (s *ReportService) Generate(ctx context.Context, userID string, req *model.AnalyzeRequest) (*model.TransparencyReport, error) {
	report, err := BuildReport(req.ProductData, req.ProductID)
	if err != nil {
		return nil, err
	}
	s.Store(ctx, userID, report)
	return report, nil
}

// Store keeps report for userID. Anonymous reports are not kept, and a
// failed store is logged without failing the caller.
func (s *ReportService) Store(ctx context.Context, userID string, report *model.TransparencyReport) {
	if userID == "" {
		return
	}
	rec := &model.ReportRecord{
		ID:        report.ID,
		ProductID: report.ProductID,
		UserID:    userID,
		Report:    report,
		CreatedAt: report.Timestamp,
	}
	if _, err := s.reports.Create(ctx, rec); err != nil {
		logging.Log.WithError(err).WithField("reportId", report.ID).Warn("could not save report")
	}
}

// Get returns ErrReportNotFound unless the report exists and belongs to userID
func (s *ReportService) Get(ctx context.Context, userID, id string) (*model.ReportRecord, error) {
	rec, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.UserID != userID {
		return nil, ErrReportNotFound
	}
	return rec, nil
}
