package review

import "errors"

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrAlreadyReviewed = errors.New("you have already reviewed this product")
	ErrNotEligible     = errors.New("only buyers with a delivered order can review this product")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrReviewNotFound  = errors.New("review not found")
)

// IsValidation reports whether err is a user-presentable rejection.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidRating) ||
		errors.Is(err, ErrAlreadyReviewed) ||
		errors.Is(err, ErrNotEligible) ||
		errors.Is(err, ErrUnauthorized)
}
