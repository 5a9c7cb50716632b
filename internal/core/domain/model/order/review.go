package order

import (
	"time"

	"orders/internal/pkg/errs"
)

const (
	minRating = 1
	maxRating = 5
)

// Review is a rating left by one party about the other after the order ran
// its course. Orders carry at most one buyer review and one seller review.
type Review struct {
	rating     int
	text       string
	reviewedAt time.Time
}

// NewReview creates a review with a star rating between 1 and 5.
func NewReview(rating int, text string, reviewedAt time.Time) (Review, error) {
	if rating < minRating || rating > maxRating {
		return Review{}, errs.NewValueIsOutOfRangeError("rating", rating, minRating, maxRating)
	}
	if reviewedAt.IsZero() {
		return Review{}, errs.NewValueIsRequiredError("reviewedAt")
	}

	return Review{rating: rating, text: text, reviewedAt: reviewedAt}, nil
}

// Rating returns the star rating.
func (r Review) Rating() int { return r.rating }

// Text returns the free-form review text.
func (r Review) Text() string { return r.text }

// ReviewedAt returns when the review was left.
func (r Review) ReviewedAt() time.Time { return r.reviewedAt }
