package scoring

import "errors"

var (
	ErrUnknownPolicy     = errors.New("unknown aggregation policy")
	ErrMissingResponse   = errors.New("missing response")
	ErrUnknownQuestion   = errors.New("unknown question")
	ErrDuplicateResponse = errors.New("duplicate response")
	ErrScoreOutOfRange   = errors.New("score out of range")
	ErrNoScores          = errors.New("no scores to classify")
)

// IsDataError reports whether err rejects the respondent's input rather than the configuration.
func IsDataError(err error) bool {
	return errors.Is(err, ErrMissingResponse) ||
		errors.Is(err, ErrUnknownQuestion) ||
		errors.Is(err, ErrDuplicateResponse) ||
		errors.Is(err, ErrScoreOutOfRange)
}
