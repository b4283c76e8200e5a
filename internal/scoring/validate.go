package scoring

import (
	"fmt"

	"style-finder/internal/domain"
)

// ValidateResponses pairs every catalog item with exactly one answer and returns the
// records in catalog order. Scores outside [MinScore, MaxScore] are rejected, never clamped.
func ValidateResponses(catalog domain.Catalog, answers []domain.Answer) ([]domain.ResponseRecord, error) {
	scores := make(map[int]int, len(answers))
	for _, a := range answers {
		if _, ok := catalog.Lookup(a.QuestionID); !ok {
			return nil, fmt.Errorf("%w: question %d", ErrUnknownQuestion, a.QuestionID)
		}
		if _, seen := scores[a.QuestionID]; seen {
			return nil, fmt.Errorf("%w: question %d", ErrDuplicateResponse, a.QuestionID)
		}
		if a.Score < domain.MinScore || a.Score > domain.MaxScore {
			return nil, fmt.Errorf("%w: question %d scored %d, want %d..%d",
				ErrScoreOutOfRange, a.QuestionID, a.Score, domain.MinScore, domain.MaxScore)
		}
		scores[a.QuestionID] = a.Score
	}

	items := catalog.Items()
	records := make([]domain.ResponseRecord, 0, len(items))
	for _, item := range items {
		score, ok := scores[item.ID]
		if !ok {
			return nil, fmt.Errorf("%w: question %d", ErrMissingResponse, item.ID)
		}
		records = append(records, domain.ResponseRecord{
			QuestionID: item.ID,
			Group:      item.Group,
			Score:      score,
		})
	}
	return records, nil
}
