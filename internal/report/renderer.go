package report

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"style-finder/internal/domain"
)

const DocumentTitle = "Management Style Report"

// Artifacts are the rendered outputs of one classification.
type Artifacts struct {
	Table       []domain.ScoreRow
	Description string
	Chart       []byte
	Document    []byte
	Warnings    []string
}

// Renderer turns a classification into the score table, chart and document.
// Chart and logo problems degrade the document; document failures do not.
type Renderer struct {
	chart        ChartRenderer
	document     DocumentRenderer
	descriptions map[domain.Style]string
	idLabel      string
	logo         []byte
	logger       *zap.Logger
}

type RendererOption func(*Renderer)

func WithChartRenderer(c ChartRenderer) RendererOption {
	return func(r *Renderer) { r.chart = c }
}

func WithDocumentRenderer(d DocumentRenderer) RendererOption {
	return func(r *Renderer) { r.document = d }
}

func WithDescriptions(descriptions map[domain.Style]string) RendererOption {
	return func(r *Renderer) { r.descriptions = descriptions }
}

func WithIDLabel(label string) RendererOption {
	return func(r *Renderer) { r.idLabel = label }
}

func WithLogo(logo []byte) RendererOption {
	return func(r *Renderer) { r.logo = logo }
}

func NewRenderer(logger *zap.Logger, opts ...RendererOption) *Renderer {
	r := &Renderer{
		chart:        NewPolarChart(),
		document:     NewPDFDocument(),
		descriptions: domain.StyleDescriptions(),
		idLabel:      "Participant ID",
		logger:       logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Render produces all artifacts. maxScore is the upper bound of the chart's radial axis.
func (r *Renderer) Render(result domain.ClassificationResult, meta domain.ReportMetadata, maxScore int) (Artifacts, error) {
	description, ok := r.descriptions[result.Style]
	if !ok || description == "" {
		return Artifacts{}, fmt.Errorf("%w: %q", ErrStyleTextMissing, result.Style)
	}

	out := Artifacts{
		Table:       ScoreTable(result),
		Description: description,
	}

	chart, err := r.chart.Render(result.Totals, maxScore)
	if err != nil {
		r.logger.Warn("chart render failed, document will not include it", zap.Error(err))
		out.Warnings = append(out.Warnings, "chart unavailable: "+err.Error())
		chart = nil
	}
	out.Chart = chart

	in := DocumentInput{
		Title:         DocumentTitle,
		Name:          meta.Name,
		ParticipantID: meta.ParticipantID,
		IDLabel:       r.idLabel,
		Style:         result.Style,
		Score:         result.Score,
		Description:   description,
		Chart:         chart,
		Logo:          r.logo,
	}
	doc, err := r.document.Render(in)
	if err != nil && (len(in.Chart) > 0 || len(in.Logo) > 0) {
		r.logger.Warn("document render with images failed, retrying without them", zap.Error(err))
		out.Warnings = append(out.Warnings, "images omitted from document: "+err.Error())
		in.Chart = nil
		in.Logo = nil
		doc, err = r.document.Render(in)
	}
	if err != nil {
		if !errors.Is(err, ErrDocumentRender) {
			err = fmt.Errorf("%w: %v", ErrDocumentRender, err)
		}
		return Artifacts{}, err
	}
	if len(doc) == 0 {
		return Artifacts{}, fmt.Errorf("%w: empty document", ErrDocumentRender)
	}
	out.Document = doc
	return out, nil
}
