package review

import (
	"context"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Verifier answers whether a user bought a product and received it.
type Verifier interface {
	Verify(ctx context.Context, userID uint, productID uuid.UUID) (Verification, error)
}

type verifier struct {
	repo Repository
}

func NewVerifier(repo Repository) Verifier {
	return &verifier{repo: repo}
}

func (v *verifier) Verify(ctx context.Context, userID uint, productID uuid.UUID) (Verification, error) {
	orderID, err := v.repo.FindDeliveredOrderWithProduct(ctx, userID, productID)
	if err != nil {
		logger.FromCtx(ctx).Error("purchase verification failed",
			zap.String("layer", "verifier"),
			zap.String("product_id", productID.String()),
			zap.Error(err),
		)
		return Verification{}, err
	}
	if orderID == nil {
		return Verification{}, nil
	}
	return Verification{Eligible: true, OrderID: orderID}, nil
}
