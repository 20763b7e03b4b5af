package handler

import (
	"bytes"
	"errors"
	"net/http"
	"transparency/internal/model"
	"transparency/internal/render"
	"transparency/internal/service"
	"transparency/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// ReportHandler handles report endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Generate handles POST /v1/reports/generate?format=pdf|md
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeRequest
	if !decode(w, r, &req) {
		return
	}

	report, err := h.reportSvc.Generate(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		if !writeValidation(w, err) {
			internalError(w, "Failed to generate report", err)
		}
		return
	}
	writeDocument(w, report, model.ParseReportFormat(r.URL.Query().Get("format")))
}

// Get handles GET /v1/reports/{id}. With ?format the stored report is rendered.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rec, err := h.reportSvc.Get(r.Context(), middleware.GetUserID(r.Context()), id)
	if errors.Is(err, service.ErrReportNotFound) {
		writeError(w, http.StatusNotFound, "Report not found")
		return
	}
	if err != nil {
		internalError(w, "Failed to fetch report", err)
		return
	}

	if format := r.URL.Query().Get("format"); format != "" {
		writeDocument(w, rec.Report, model.ParseReportFormat(format))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"report":  rec,
	})
}

// writeDocument renders fully before writing so a render failure can still become a 500
func writeDocument(w http.ResponseWriter, report *model.TransparencyReport, format model.ReportFormat) {
	renderer := render.For(format)

	var buf bytes.Buffer
	if err := renderer.Render(&buf, report); err != nil {
		internalError(w, "Failed to generate PDF report", err)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+render.Filename(report.ProductData.Name, renderer)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
