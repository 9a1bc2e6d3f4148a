package graph

import (
	"errors"
	"testing"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/review"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMutationResolver_CreateReview(t *testing.T) {
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		mr := &mutationResolver{&Resolver{ReviewSvc: mockSvc}}
		orderID := uuid.New()
		mockSvc.On("CreateReview", mock.Anything, review.CreateReviewInput{
			UserID:    7,
			ProductID: productID,
			Rating:    5,
			Title:     "Great",
		}).Return(&review.Review{
			ID:                 uuid.New(),
			UserID:             7,
			ProductID:          productID,
			OrderID:            &orderID,
			Rating:             5,
			Title:              "Great",
			IsVerifiedPurchase: true,
		}, nil)

		res, err := mr.CreateReview(buyerCtx(), model.CreateReviewInput{
			ProductID: productID.String(),
			Rating:    5,
			Title:     utils.StrPtr("Great"),
		})

		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.True(t, res.Review.IsVerifiedPurchase)
		assert.Equal(t, orderID.String(), *res.Review.OrderID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("AlreadyReviewed", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		mr := &mutationResolver{&Resolver{ReviewSvc: mockSvc}}
		mockSvc.On("CreateReview", mock.Anything, mock.Anything).Return(nil, review.ErrAlreadyReviewed)

		res, err := mr.CreateReview(buyerCtx(), model.CreateReviewInput{ProductID: productID.String(), Rating: 4})

		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, review.ErrAlreadyReviewed.Error(), *res.Message)
	})

	t.Run("InvalidProductID", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		mr := &mutationResolver{&Resolver{ReviewSvc: mockSvc}}

		res, _ := mr.CreateReview(buyerCtx(), model.CreateReviewInput{ProductID: "abc", Rating: 4})

		assert.False(t, res.Success)
		mockSvc.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
	})
}

func TestQueryResolver_ProductReviews(t *testing.T) {
	productID := uuid.New()

	t.Run("Empty list is not null", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		qr := &queryResolver{&Resolver{ReviewSvc: mockSvc}}
		mockSvc.On("ListProductReviews", mock.Anything, productID, 0, 0).Return(nil, nil)

		res, err := qr.ProductReviews(buyerCtx(), productID.String(), nil, nil)

		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("DBError", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		qr := &queryResolver{&Resolver{ReviewSvc: mockSvc}}
		mockSvc.On("ListProductReviews", mock.Anything, productID, 0, 0).Return(nil, errors.New("db down"))

		_, err := qr.ProductReviews(buyerCtx(), productID.String(), nil, nil)

		assert.EqualError(t, err, genericErrorMessage)
	})
}

func TestQueryResolver_ReviewEligibility(t *testing.T) {
	productID := uuid.New()

	t.Run("Eligible", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		qr := &queryResolver{&Resolver{ReviewSvc: mockSvc}}
		orderID := uuid.New()
		mockSvc.On("CanUserReviewProduct", mock.Anything, uint(7), productID).
			Return(&review.Eligibility{CanReview: true, OrderID: &orderID}, nil)

		res, err := qr.ReviewEligibility(buyerCtx(), productID.String())

		require.NoError(t, err)
		assert.True(t, res.CanReview)
		assert.Nil(t, res.Reason)
		assert.Equal(t, orderID.String(), *res.OrderID)
	})

	t.Run("Already reviewed", func(t *testing.T) {
		mockSvc := new(MockReviewService)
		qr := &queryResolver{&Resolver{ReviewSvc: mockSvc}}
		mockSvc.On("CanUserReviewProduct", mock.Anything, uint(7), productID).
			Return(&review.Eligibility{CanReview: false, Reason: review.ReasonAlreadyReviewed}, nil)

		res, err := qr.ReviewEligibility(buyerCtx(), productID.String())

		require.NoError(t, err)
		assert.False(t, res.CanReview)
		assert.Equal(t, review.ReasonAlreadyReviewed, *res.Reason)
	})
}
