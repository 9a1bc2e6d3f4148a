package cart

import (
	"context"
	"database/sql"
	"fmt"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// ClearCart deletes every cart row of the buyer. An already empty cart is
	// not an error.
	ClearCart(ctx context.Context, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ClearCart(ctx context.Context, userID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ClearCart"),
		zap.Uint("user_id", userID),
	)

	if userID == 0 {
		return ErrInvalidUser
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedClearCart, err)
	}

	if n, err := res.RowsAffected(); err == nil {
		log.Debug("cart cleared", zap.Int64("rows", n))
	}
	return nil
}
