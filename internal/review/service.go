package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	CreateReview(ctx context.Context, input CreateReviewInput) (*Review, error)
	CanUserReviewProduct(ctx context.Context, userID uint, productID uuid.UUID) (*Eligibility, error)
	ListProductReviews(ctx context.Context, productID uuid.UUID, limit, page int) ([]*Review, error)
}

type service struct {
	repo            Repository
	verifier        Verifier
	requireVerified bool
	now             func() time.Time
}

// NewService builds the review service. With requireVerified set, reviews
// without a delivered purchase are rejected instead of stored unverified.
func NewService(repo Repository, verifier Verifier, requireVerified bool) Service {
	return &service{
		repo:            repo,
		verifier:        verifier,
		requireVerified: requireVerified,
		now:             time.Now,
	}
}

func (s *service) CreateReview(ctx context.Context, in CreateReviewInput) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateReview"),
		zap.Uint("user_id", in.UserID),
		zap.String("product_id", in.ProductID.String()),
	)

	if in.UserID == 0 {
		return nil, ErrUnauthorized
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}

	// Uniqueness precedes verification.
	if err := s.ensureNotReviewed(ctx, in.UserID, in.ProductID); err != nil {
		return nil, err
	}

	v, err := s.verifier.Verify(ctx, in.UserID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !v.Eligible && s.requireVerified {
		log.Info("review rejected, no delivered purchase")
		return nil, ErrNotEligible
	}

	rv := &Review{
		ID:                 uuid.New(),
		UserID:             in.UserID,
		ProductID:          in.ProductID,
		OrderID:            v.OrderID,
		Rating:             in.Rating,
		Title:              strings.TrimSpace(in.Title),
		Comment:            strings.TrimSpace(in.Comment),
		IsVerifiedPurchase: v.Eligible,
		CreatedAt:          s.now(),
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	log.Info("review created", zap.Bool("verified", rv.IsVerifiedPurchase))
	return rv, nil
}

func (s *service) ensureNotReviewed(ctx context.Context, userID uint, productID uuid.UUID) error {
	_, err := s.repo.GetByUserAndProduct(ctx, userID, productID)
	if err == nil {
		return ErrAlreadyReviewed
	}
	if errors.Is(err, ErrReviewNotFound) {
		return nil
	}
	return err
}

func (s *service) CanUserReviewProduct(ctx context.Context, userID uint, productID uuid.UUID) (*Eligibility, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	if err := s.ensureNotReviewed(ctx, userID, productID); err != nil {
		if errors.Is(err, ErrAlreadyReviewed) {
			return &Eligibility{CanReview: false, Reason: ReasonAlreadyReviewed}, nil
		}
		return nil, err
	}

	v, err := s.verifier.Verify(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !v.Eligible {
		return &Eligibility{CanReview: false, Reason: ReasonNoPurchase}, nil
	}
	return &Eligibility{CanReview: true, OrderID: v.OrderID}, nil
}

func (s *service) ListProductReviews(ctx context.Context, productID uuid.UUID, limit, page int) ([]*Review, error) {
	return s.repo.ListByProduct(ctx, productID, limit, page)
}
