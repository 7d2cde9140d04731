package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/satyammall/stockledger/internal/service/report"
	"github.com/satyammall/stockledger/pkg/clients/renderer"
)

// ReportHandler serves aggregated summaries and CSV/PDF exports.
type ReportHandler struct {
	reports  *report.Service
	renderer renderer.Client
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(reports *report.Service, pdf renderer.Client, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reports: reports, renderer: pdf, logger: logger, now: time.Now}
}

// Summary returns global stats plus floor summaries for a filter.
func (h *ReportHandler) Summary(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rep, err := h.reports.Build(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed building summary", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "transaction log unavailable"})
		return
	}

	c.JSON(http.StatusOK, rep.Summary)
}

// ExportCSV streams the filtered log as a CSV download.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rep, err := h.reports.Build(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed building csv export", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "transaction log unavailable"})
		return
	}

	body := report.EncodeCSV(report.CSVRows(rep.Transactions))
	name := report.CSVFileName(h.now())

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv", body)
}

// ExportPDF renders the report document to PDF. With a location query
// parameter it produces the per-location detail variant.
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rep, err := h.reports.Build(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed building pdf export", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "transaction log unavailable"})
		return
	}

	location := c.Query("detail_location")
	var doc report.Document
	var name string
	if location != "" {
		doc = report.BuildLocationDocument(location, rep.Transactions, rep.Summary)
		name = report.LocationPDFFileName(location, h.now())
	} else {
		doc = report.BuildDocument(rep.Transactions, rep.Summary)
		name = report.PDFFileName(h.now())
	}

	html, err := renderDocumentHTML(doc)
	if err != nil {
		h.logger.Error("failed rendering report html", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report rendering failed"})
		return
	}

	pdf, err := h.renderer.RenderPDF(c.Request.Context(), html)
	if err != nil {
		h.logger.Error("pdf conversion failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "pdf renderer unavailable"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
