// Package inventory owns per-product available quantity.
//
// Every mutation is a single UPDATE evaluated by Postgres under the row lock,
// so two concurrent checkouts against the same product cannot both read the
// same starting quantity. Stock never goes below zero: an oversell floors at 0.
package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Ledger interface {
	// Decrement subtracts qty from the product's stock, floored at zero, and
	// returns the remaining quantity.
	Decrement(ctx context.Context, q db.DBTX, productID uuid.UUID, qty int) (int, error)
	// Restore adds qty back to the product's stock.
	Restore(ctx context.Context, q db.DBTX, productID uuid.UUID, qty int) (int, error)
}

type ledger struct {
	db *sql.DB
}

func NewLedger(db *sql.DB) Ledger {
	return &ledger{db: db}
}

const decrementQuery = `
	UPDATE products
	SET quantity = GREATEST(quantity - $1, 0), updated_at = NOW()
	WHERE id = $2
	RETURNING quantity
`

const restoreQuery = `
	UPDATE products
	SET quantity = quantity + $1, updated_at = NOW()
	WHERE id = $2
	RETURNING quantity
`

func (l *ledger) Decrement(ctx context.Context, q db.DBTX, productID uuid.UUID, qty int) (int, error) {
	return l.adjust(ctx, q, "Decrement", decrementQuery, productID, qty)
}

func (l *ledger) Restore(ctx context.Context, q db.DBTX, productID uuid.UUID, qty int) (int, error) {
	return l.adjust(ctx, q, "Restore", restoreQuery, productID, qty)
}

func (l *ledger) adjust(
	ctx context.Context,
	q db.DBTX,
	method string,
	query string,
	productID uuid.UUID,
	qty int,
) (int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "inventory"),
		zap.String("method", method),
		zap.String("product_id", productID.String()),
		zap.Int("quantity", qty),
	)

	if qty <= 0 {
		log.Warn("rejected non-positive stock adjustment")
		return 0, ErrInvalidQuantity
	}
	if q == nil {
		q = l.db
	}

	var remaining int
	err := q.QueryRowContext(ctx, query, qty, productID).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn("product not found for stock adjustment")
		return 0, ErrProductNotFound
	}
	if err != nil {
		log.Error("stock adjustment failed", zap.Error(err))
		return 0, fmt.Errorf("failed to %s stock: %w", method, err)
	}

	log.Debug("stock adjusted", zap.Int("remaining", remaining))
	return remaining, nil
}
