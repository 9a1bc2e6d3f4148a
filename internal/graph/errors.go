package graph

import (
	"context"
	"errors"

	"storefront-be/internal/company"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/review"

	"go.uber.org/zap"
)

const genericErrorMessage = "something went wrong, please try again later"

var (
	errUnauthorized     = errors.New("unauthorized")
	errForbidden        = errors.New("forbidden: admin only")
	errInvalidOrderID   = errors.New("invalid order ID")
	errInvalidProductID = errors.New("invalid product ID")
	errInvalidVariantID = errors.New("invalid variant ID")
	errInvalidCompanyID = errors.New("invalid company ID")
)

// userMessage returns the message a client may see for err. Errors that are
// not the caller's fault are logged and replaced with a generic message.
func userMessage(ctx context.Context, method string, err error) string {
	if isPresentable(err) {
		return err.Error()
	}
	logger.FromCtx(ctx).Error("request failed",
		zap.String("layer", "graph"),
		zap.String("method", method),
		zap.Error(err),
	)
	return genericErrorMessage
}

// queryError is userMessage for resolvers that report through the errors list.
func queryError(ctx context.Context, method string, err error) error {
	return errors.New(userMessage(ctx, method, err))
}

func isPresentable(err error) bool {
	switch {
	case order.IsValidation(err), review.IsValidation(err):
		return true
	case errors.Is(err, review.ErrReviewNotFound),
		errors.Is(err, company.ErrCompanyNotFound),
		errors.Is(err, company.ErrInvalidStatus),
		errors.Is(err, company.ErrInvalidCommission),
		errors.Is(err, errInvalidOrderID),
		errors.Is(err, errInvalidProductID),
		errors.Is(err, errInvalidVariantID),
		errors.Is(err, errInvalidCompanyID):
		return true
	}
	return false
}
