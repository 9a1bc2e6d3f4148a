package graph

import (
	"context"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/review"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
)

func (r *mutationResolver) CreateReview(ctx context.Context, input model.CreateReviewInput) (*model.ReviewResponse, error) {
	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		return &model.ReviewResponse{
			Success: false,
			Message: utils.StrPtr(errInvalidProductID.Error()),
		}, nil
	}
	userID, _ := utils.GetUserIDFromContext(ctx)

	rv, err := r.ReviewSvc.CreateReview(ctx, review.CreateReviewInput{
		UserID:    userID,
		ProductID: productID,
		Rating:    int(input.Rating),
		Title:     utils.PtrString(input.Title),
		Comment:   utils.PtrString(input.Comment),
	})
	if err != nil {
		return &model.ReviewResponse{
			Success: false,
			Message: utils.StrPtr(userMessage(ctx, "CreateReview", err)),
		}, nil
	}

	return &model.ReviewResponse{
		Success: true,
		Message: utils.StrPtr("Review submitted"),
		Review:  toGraphQLReview(rv),
	}, nil
}

func (r *queryResolver) ProductReviews(ctx context.Context, productID string, limit, page *int32) ([]*model.Review, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, errInvalidProductID
	}

	reviews, err := r.ReviewSvc.ListProductReviews(ctx, pid, intOrZero(limit), intOrZero(page))
	if err != nil {
		return nil, queryError(ctx, "ProductReviews", err)
	}

	list := make([]*model.Review, 0, len(reviews))
	for _, rv := range reviews {
		list = append(list, toGraphQLReview(rv))
	}
	return list, nil
}

func (r *queryResolver) ReviewEligibility(ctx context.Context, productID string) (*model.ReviewEligibility, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, errInvalidProductID
	}
	userID, _ := utils.GetUserIDFromContext(ctx)

	e, err := r.ReviewSvc.CanUserReviewProduct(ctx, userID, pid)
	if err != nil {
		return nil, queryError(ctx, "ReviewEligibility", err)
	}

	res := &model.ReviewEligibility{CanReview: e.CanReview, OrderID: uuidPtr(e.OrderID)}
	if e.Reason != "" {
		res.Reason = utils.StrPtr(e.Reason)
	}
	return res, nil
}
