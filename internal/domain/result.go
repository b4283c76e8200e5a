package domain

import "time"

type ClassificationResult struct {
	Style  Style       `json:"style"`
	Score  int         `json:"score"`
	Totals StyleTotals `json:"totals"`
}

// ScoreRow es una fila de la tabla de puntajes.
type ScoreRow struct {
	Style Style `json:"style"`
	Score int   `json:"score"`
}

type ReportMetadata struct {
	Name          string `json:"name"`
	ParticipantID string `json:"participant_id"`
}

// Report agrupa los artefactos de una entrega. No se modifica despues de creado.
type Report struct {
	ID           string               `json:"id"`
	Metadata     ReportMetadata       `json:"metadata"`
	Result       ClassificationResult `json:"result"`
	Table        []ScoreRow           `json:"table"`
	Description  string               `json:"description"`
	Chart        []byte               `json:"chart,omitempty"`
	Document     []byte               `json:"document"`
	ChartPath    string               `json:"chart_path,omitempty"`
	DocumentPath string               `json:"document_path"`
	Warnings     []string             `json:"warnings,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// HasChart indica si el reporte incluye la imagen del grafico.
func (r Report) HasChart() bool {
	return len(r.Chart) > 0
}
