package scoring

import "style-finder/internal/domain"

// Classify picks the style with the highest total. Ties go to the style that comes first
// in domain.Styles() (Top Dog, Collaborator, Chillaxer, Visionary).
func Classify(totals domain.StyleTotals) (domain.ClassificationResult, error) {
	if len(totals) == 0 || totals.Sum() == 0 {
		return domain.ClassificationResult{}, ErrNoScores
	}

	best := domain.Style("")
	bestScore := 0
	for _, s := range domain.Styles() {
		score := totals[s]
		if best == "" || score > bestScore {
			best = s
			bestScore = score
		}
	}

	full := domain.NewStyleTotals()
	for _, s := range domain.Styles() {
		full[s] = totals[s]
	}
	return domain.ClassificationResult{
		Style:  best,
		Score:  bestScore,
		Totals: full,
	}, nil
}
