package product

import (
	"context"
	"database/sql"
	"fmt"

	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetSnapshots(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Snapshot, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetSnapshots loads the purchase-time snapshot of every product in ids.
// Unknown ids are simply absent from the result.
func (r *repository) GetSnapshots(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Snapshot, error) {
	out := make(map[uuid.UUID]Snapshot, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetSnapshots"),
		zap.Int("product_count", len(ids)),
	)

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, seller_id, name, sku, image_url
		FROM products
		WHERE id = ANY($1::uuid[])
	`, pq.Array(keys))
	if err != nil {
		log.Error("failed to query product snapshots", zap.Error(err))
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.SellerID, &s.Name, &s.SKU, &s.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	log.Debug("product snapshots loaded", zap.Int("found", len(out)))
	return out, nil
}
