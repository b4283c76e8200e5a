package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"style-finder/internal/domain"
	"style-finder/internal/report"
	"style-finder/internal/service"
)

// ReportHandler sirve los artefactos de un reporte vivo a traves de links firmados.
type ReportHandler struct {
	logger *zap.Logger
	svc    *service.AssessmentService
	links  *service.LinkService
}

// NewReportHandler crea una instancia de ReportHandler.
func NewReportHandler(logger *zap.Logger, svc *service.AssessmentService, links *service.LinkService) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{logger: logger, svc: svc, links: links}
}

// GetChart maneja GET /reports/:id/chart.png.
func (h *ReportHandler) GetChart(c *gin.Context) {
	h.serve(c, service.ArtifactChart, "image/png", report.ChartFileName, func(r domain.Report) []byte {
		return r.Chart
	})
}

// GetDocument maneja GET /reports/:id/document.pdf.
func (h *ReportHandler) GetDocument(c *gin.Context) {
	h.serve(c, service.ArtifactDocument, "application/pdf", report.DocumentFileName, func(r domain.Report) []byte {
		return r.Document
	})
}

func (h *ReportHandler) serve(c *gin.Context, kind service.ArtifactKind, wantMIME, filename string, pick func(domain.Report) []byte) {
	if h == nil || h.links == nil || h.svc == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "downloads not configured"})
		return
	}
	id := c.Param("id")

	if err := h.links.Verify(c.Query("token"), id, kind); err != nil {
		if errors.Is(err, service.ErrLinkExpired) {
			c.JSON(http.StatusGone, gin.H{"error": "link expired"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid link"})
		return
	}

	rep, err := h.svc.Report(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		h.logger.Error("load report failed", zap.String("report_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load report"})
		return
	}

	data := pick(rep)
	if len(data) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "artifact not available"})
		return
	}
	if detected := mimetype.Detect(data); !detected.Is(wantMIME) {
		h.logger.Error("artifact type mismatch",
			zap.String("report_id", id),
			zap.String("expected", wantMIME),
			zap.String("detected", detected.String()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "artifact corrupted"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, wantMIME, data)
}
