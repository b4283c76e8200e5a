package scoring

import "style-finder/internal/domain"

// Evaluate runs validation, aggregation and classification for one submission. It has no
// side effects: the same inputs always give the same result.
func Evaluate(catalog domain.Catalog, answers []domain.Answer, policy Policy) (domain.ClassificationResult, error) {
	records, err := ValidateResponses(catalog, answers)
	if err != nil {
		return domain.ClassificationResult{}, err
	}
	totals, err := policy.Aggregate(records)
	if err != nil {
		return domain.ClassificationResult{}, err
	}
	return Classify(totals)
}
