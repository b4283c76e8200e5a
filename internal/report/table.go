package report

import "style-finder/internal/domain"

// ScoreTable lists every style with its total, in canonical order.
func ScoreTable(result domain.ClassificationResult) []domain.ScoreRow {
	styles := domain.Styles()
	rows := make([]domain.ScoreRow, 0, len(styles))
	for _, s := range styles {
		rows = append(rows, domain.ScoreRow{Style: s, Score: result.Totals[s]})
	}
	return rows
}
