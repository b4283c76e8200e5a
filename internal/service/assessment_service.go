package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"style-finder/internal/domain"
	"style-finder/internal/metrics"
	"style-finder/internal/report"
	"style-finder/internal/scoring"
)

var (
	ErrAssessmentNotConfigured = errors.New("assessment service not configured")
	ErrInvalidParticipant      = errors.New("participant name and id are required")
	ErrReportFailed            = errors.New("report generation failed")
)

// Submission is one respondent's answers as received from the UI.
type Submission struct {
	AccessSecret  string
	Name          string
	ParticipantID string
	Answers       []domain.Answer
}

type AssessmentOptions struct {
	Policy scoring.Policy
	// ChartMaxScore overrides the chart's radial bound; 0 derives it from the catalog.
	ChartMaxScore int
	Gate          *AccessGate
	Renderer      *report.Renderer
	Writer        report.ArtifactWriter
	Store         ReportStore
	Metrics       metrics.Recorder
	// ReportTTL is how long a report stays live; its directory is swept afterwards.
	ReportTTL time.Duration
}

// AssessmentService runs the scoring and report pipeline against a catalog loaded once at startup.
type AssessmentService struct {
	catalog  domain.Catalog
	policy   scoring.Policy
	maxScore int
	gate     *AccessGate
	renderer *report.Renderer
	writer   report.ArtifactWriter
	store    ReportStore
	ttl      time.Duration
	metrics  metrics.Recorder
	logger   *zap.Logger
	newID    func() string
	now      func() time.Time
}

func NewAssessmentService(logger *zap.Logger, catalog domain.Catalog, opts AssessmentOptions) (*AssessmentService, error) {
	if catalog.Len() == 0 {
		return nil, domain.ErrCatalogEmpty
	}
	policy := opts.Policy
	if policy == "" {
		policy = scoring.PolicyGroupIdentity
	}
	maxScore := opts.ChartMaxScore
	if maxScore <= 0 {
		derived, err := policy.MaxStyleScore(catalog.Items())
		if err != nil {
			return nil, err
		}
		if derived == 0 {
			return nil, fmt.Errorf("%w: no question maps to a style under %s", scoring.ErrNoScores, policy)
		}
		maxScore = derived
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = report.NewRenderer(logger)
	}
	ttl := opts.ReportTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	store := opts.Store
	if store == nil {
		store = NewMemoryReportStore(ttl)
	}
	writer := opts.Writer
	if writer.Root == "" {
		writer.Root = "reports"
	}
	recorder := opts.Metrics
	if recorder == nil {
		recorder = metrics.Nop()
	}
	return &AssessmentService{
		catalog:  catalog,
		policy:   policy,
		maxScore: maxScore,
		gate:     opts.Gate,
		renderer: renderer,
		writer:   writer,
		store:    store,
		ttl:      ttl,
		metrics:  recorder,
		logger:   logger,
		newID:    uuid.NewString,
		now:      time.Now,
	}, nil
}

// Questions returns the catalog in presentation order.
func (s *AssessmentService) Questions() []domain.QuestionItem {
	return s.catalog.Items()
}

func (s *AssessmentService) Policy() scoring.Policy {
	return s.policy
}

// ChartMaxScore is the radial bound used for every chart this service draws.
func (s *AssessmentService) ChartMaxScore() int {
	return s.maxScore
}

// Authorize checks the shared access secret.
func (s *AssessmentService) Authorize(secret string) error {
	if s == nil || s.gate == nil {
		return ErrAssessmentNotConfigured
	}
	return s.gate.Check(secret)
}

// Submit gates, scores and renders one submission. Nothing is written unless scoring
// succeeds, and a failed render or write leaves no artifacts behind.
func (s *AssessmentService) Submit(ctx context.Context, sub Submission) (domain.Report, error) {
	if s == nil || s.gate == nil {
		return domain.Report{}, ErrAssessmentNotConfigured
	}
	if err := s.gate.Check(sub.AccessSecret); err != nil {
		s.metrics.RecordRejection("access")
		return domain.Report{}, err
	}

	meta := domain.ReportMetadata{
		Name:          strings.TrimSpace(sub.Name),
		ParticipantID: strings.TrimSpace(sub.ParticipantID),
	}
	if meta.Name == "" || meta.ParticipantID == "" {
		s.metrics.RecordRejection("participant")
		return domain.Report{}, ErrInvalidParticipant
	}

	result, err := scoring.Evaluate(s.catalog, sub.Answers, s.policy)
	if err != nil {
		reason := "no_scores"
		if scoring.IsDataError(err) {
			reason = "invalid_responses"
		}
		s.metrics.RecordRejection(reason)
		return domain.Report{}, err
	}

	artifacts, err := s.renderer.Render(result, meta, s.maxScore)
	if err != nil {
		s.metrics.RecordRejection("render")
		s.logger.Error("report render failed", zap.String("participant_id", meta.ParticipantID), zap.Error(err))
		return domain.Report{}, fmt.Errorf("%w: %w", ErrReportFailed, err)
	}
	if err := ctx.Err(); err != nil {
		return domain.Report{}, err
	}

	id := s.newID()
	paths, err := s.writer.Write(id, artifacts.Chart, artifacts.Document)
	if err != nil {
		s.metrics.RecordRejection("write")
		s.logger.Error("report write failed", zap.String("report_id", id), zap.Error(err))
		return domain.Report{}, fmt.Errorf("%w: %w", ErrReportFailed, err)
	}

	rep := domain.Report{
		ID:           id,
		Metadata:     meta,
		Result:       result,
		Table:        artifacts.Table,
		Description:  artifacts.Description,
		Chart:        artifacts.Chart,
		Document:     artifacts.Document,
		ChartPath:    paths.Chart,
		DocumentPath: paths.Document,
		Warnings:     artifacts.Warnings,
		CreatedAt:    s.now().UTC(),
	}

	superseded, err := s.store.Save(ctx, rep)
	if err != nil {
		_ = s.writer.Remove(id)
		s.metrics.RecordRejection("store")
		s.logger.Error("report store failed", zap.String("report_id", id), zap.Error(err))
		return domain.Report{}, fmt.Errorf("%w: %w", ErrReportFailed, err)
	}
	if superseded != "" {
		if err := s.writer.Remove(superseded); err != nil {
			s.logger.Warn("superseded report cleanup failed", zap.String("report_id", superseded), zap.Error(err))
		}
	}

	if !rep.HasChart() {
		s.metrics.RecordDegraded("chart")
	}
	s.metrics.RecordSubmission(string(result.Style))
	s.logger.Info("assessment classified",
		zap.String("report_id", id),
		zap.String("participant_id", meta.ParticipantID),
		zap.String("style", string(result.Style)),
		zap.Int("score", result.Score),
		zap.String("policy", string(s.policy)),
		zap.Strings("warnings", rep.Warnings),
	)
	return rep, nil
}

// Report fetches a live report by id.
func (s *AssessmentService) Report(ctx context.Context, id string) (domain.Report, error) {
	return s.store.Get(ctx, id)
}

// LatestReport fetches the participant's current report.
func (s *AssessmentService) LatestReport(ctx context.Context, participantID string) (domain.Report, error) {
	return s.store.Latest(ctx, participantID)
}

// SweepExpired removes artifact directories whose report is no longer live. A directory
// younger than the report TTL is kept even if the store misses it, since its report may
// still be in the middle of being saved.
func (s *AssessmentService) SweepExpired(ctx context.Context) ([]string, error) {
	dirs, err := s.writer.List()
	if err != nil {
		return nil, err
	}
	now := s.now()
	var removed []string
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if now.Sub(dir.ModTime) < s.ttl {
			continue
		}
		_, err := s.store.Get(ctx, dir.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrReportNotFound) {
			return removed, err
		}
		if err := s.writer.Remove(dir.ID); err != nil {
			s.logger.Warn("expired report cleanup failed", zap.String("report_id", dir.ID), zap.Error(err))
			continue
		}
		removed = append(removed, dir.ID)
	}
	if len(removed) > 0 {
		s.logger.Info("expired reports removed", zap.Int("count", len(removed)))
	}
	return removed, nil
}

// RunSweeper calls SweepExpired every interval until ctx is done.
func (s *AssessmentService) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepExpired(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn("report sweep failed", zap.Error(err))
			}
		}
	}
}
