package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByUserAndProduct(ctx context.Context, userID uint, productID uuid.UUID) (*Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, limit, page int) ([]*Review, error)
	// FindDeliveredOrderWithProduct returns the most recent delivered order of
	// userID that contains productID, or nil when there is none.
	FindDeliveredOrderWithProduct(ctx context.Context, userID uint, productID uuid.UUID) (*uuid.UUID, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const reviewColumns = `id, user_id, product_id, order_id, rating, title, comment, is_verified_purchase, created_at`

func scanReview(row interface{ Scan(...any) error }) (*Review, error) {
	var r Review
	if err := row.Scan(
		&r.ID, &r.UserID, &r.ProductID, &r.OrderID, &r.Rating,
		&r.Title, &r.Comment, &r.IsVerifiedPurchase, &r.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *repository) Create(ctx context.Context, rv *Review) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateReview"),
		zap.String("product_id", rv.ProductID.String()),
	)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (`+reviewColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		rv.ID,
		rv.UserID,
		rv.ProductID,
		rv.OrderID,
		rv.Rating,
		rv.Title,
		rv.Comment,
		rv.IsVerifiedPurchase,
		rv.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			log.Info("duplicate review rejected by unique index")
			return ErrAlreadyReviewed
		}
		log.Error("failed to insert review", zap.Error(err))
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *repository) GetByUserAndProduct(ctx context.Context, userID uint, productID uuid.UUID) (*Review, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	rv, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return rv, nil
}

func (r *repository) ListByProduct(ctx context.Context, productID uuid.UUID, limit, page int) ([]*Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, productID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *repository) FindDeliveredOrderWithProduct(ctx context.Context, userID uint, productID uuid.UUID) (*uuid.UUID, error) {
	var orderID uuid.UUID
	err := r.db.QueryRowContext(ctx, `
		SELECT o.id
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.user_id = $1
			AND oi.product_id = $2
			AND o.status = 'delivered'
		ORDER BY o.delivered_at DESC NULLS LAST, o.created_at DESC
		LIMIT 1
	`, userID, productID).Scan(&orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to verify purchase: %w", err)
	}
	return &orderID, nil
}
