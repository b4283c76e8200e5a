package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"style-finder/internal/domain"
	"style-finder/internal/scoring"
	"style-finder/internal/service"
)

// AssessmentHandler mantiene dependencias para el cuestionario y la puntuacion.
type AssessmentHandler struct {
	logger *zap.Logger
	svc    *service.AssessmentService
	links  *service.LinkService
}

// NewAssessmentHandler crea una instancia de AssessmentHandler.
func NewAssessmentHandler(logger *zap.Logger, svc *service.AssessmentService, links *service.LinkService) *AssessmentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentHandler{logger: logger, svc: svc, links: links}
}

// Service expone el servicio para el middleware de acceso.
func (h *AssessmentHandler) Service() *service.AssessmentService {
	if h == nil {
		return nil
	}
	return h.svc
}

type questionResponse struct {
	ID    int    `json:"id"`
	Text  string `json:"text"`
	Group string `json:"group"`
}

type artifactLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GetQuestions maneja GET /questions.
func (h *AssessmentHandler) GetQuestions(c *gin.Context) {
	items := h.svc.Questions()
	questions := make([]questionResponse, 0, len(items))
	for _, item := range items {
		questions = append(questions, questionResponse{
			ID:    item.ID,
			Text:  item.Text,
			Group: item.Group.String(),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"scale": gin.H{
			"min":     domain.MinScore,
			"max":     domain.MaxScore,
			"default": defaultScore,
		},
	})
}

const defaultScore = 3

// PostAssessment maneja POST /assessments.
func (h *AssessmentHandler) PostAssessment(c *gin.Context) {
	var req struct {
		Name          string          `json:"name" binding:"required"`
		ParticipantID string          `json:"participant_id" binding:"required"`
		Responses     []domain.Answer `json:"responses" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid assessment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	rep, err := h.svc.Submit(c.Request.Context(), service.Submission{
		AccessSecret:  GetAccessSecret(c),
		Name:          req.Name,
		ParticipantID: req.ParticipantID,
		Answers:       req.Responses,
	})
	if err != nil {
		h.writeSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.reportBody(rep))
}

// GetLatestReport maneja GET /reports/latest?participant_id=... con links nuevos.
func (h *AssessmentHandler) GetLatestReport(c *gin.Context) {
	participantID := strings.TrimSpace(c.Query("participant_id"))
	if participantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "participant_id is required"})
		return
	}
	rep, err := h.svc.LatestReport(c.Request.Context(), participantID)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		h.logger.Error("load latest report failed", zap.String("participant_id", participantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load report"})
		return
	}
	c.JSON(http.StatusOK, h.reportBody(rep))
}

func (h *AssessmentHandler) reportBody(rep domain.Report) gin.H {
	links := gin.H{}
	if rep.HasChart() {
		link, err := h.link(rep.ID, service.ArtifactChart, "chart.png")
		if err != nil {
			h.logger.Error("issue chart link failed", zap.String("report_id", rep.ID), zap.Error(err))
		} else {
			links["chart"] = link
		}
	}
	if link, err := h.link(rep.ID, service.ArtifactDocument, "document.pdf"); err != nil {
		h.logger.Error("issue document link failed", zap.String("report_id", rep.ID), zap.Error(err))
	} else {
		links["document"] = link
	}

	return gin.H{
		"report_id":   rep.ID,
		"style":       rep.Result.Style,
		"score":       rep.Result.Score,
		"table":       rep.Table,
		"description": rep.Description,
		"warnings":    rep.Warnings,
		"links":       links,
	}
}

func (h *AssessmentHandler) link(reportID string, kind service.ArtifactKind, file string) (artifactLink, error) {
	if h.links == nil {
		return artifactLink{}, errors.New("link service not configured")
	}
	token, expires, err := h.links.Issue(reportID, kind)
	if err != nil {
		return artifactLink{}, err
	}
	return artifactLink{
		URL:       fmt.Sprintf("/reports/%s/%s?token=%s", reportID, file, token),
		ExpiresAt: expires,
	}, nil
}

func (h *AssessmentHandler) writeSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAccessDenied):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
	case errors.Is(err, service.ErrInvalidParticipant):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case scoring.IsDataError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, scoring.ErrNoScores):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no scores to classify"})
	case errors.Is(err, service.ErrReportFailed):
		h.logger.Error("report generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate report"})
	default:
		h.logger.Error("submit assessment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process assessment"})
	}
}
