package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type Repository interface {
	InsertOrder(ctx context.Context, o *Order) error
	// InsertItems writes every item of an order in a single transaction.
	InsertItems(ctx context.Context, items []OrderItem) error
	// DeleteOrder removes an order header and, by cascade, its items. Deleting
	// an order that no longer exists is not an error.
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error

	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*Order, error)
	GetOrderByIDAndUser(ctx context.Context, orderID uuid.UUID, userID uint) (*Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error)
	GetUserOrders(ctx context.Context, userID uint, limit, page int) ([]*Order, error)

	// UpdateState persists the status fields of o only if the stored row still
	// matches prev. A lost race returns ErrConcurrentUpdate.
	UpdateState(ctx context.Context, q db.DBTX, o *Order, prev State) error

	WithTx(ctx context.Context, fn func(q db.DBTX) error) error
}

// State is the triple of lifecycle axes used for compare-and-set updates.
type State struct {
	Status         OrderStatus
	PaymentStatus  PaymentStatus
	ShippingStatus ShippingStatus
}

func (o *Order) State() State {
	return State{
		Status:         o.Status,
		PaymentStatus:  o.PaymentStatus,
		ShippingStatus: o.ShippingStatus,
	}
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, order_number, user_id, seller_id,
	status, payment_status, shipping_status, payment_method,
	subtotal, shipping_cost, tax_amount, discount_amount, total_amount, currency,
	shipping_address, billing_address, tracking_number,
	shipped_at, delivered_at, cancelled_at, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.SellerID,
		&o.Status, &o.PaymentStatus, &o.ShippingStatus, &o.PaymentMethod,
		&o.Subtotal, &o.ShippingCost, &o.TaxAmount, &o.DiscountAmount, &o.TotalAmount, &o.Currency,
		&o.ShippingAddress, &o.BillingAddress, &o.TrackingNumber,
		&o.ShippedAt, &o.DeliveredAt, &o.CancelledAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) InsertOrder(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "InsertOrder"),
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
	)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (
			id, order_number, user_id, seller_id,
			status, payment_status, shipping_status, payment_method,
			subtotal, shipping_cost, tax_amount, discount_amount, total_amount, currency,
			shipping_address, billing_address, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`,
		o.ID,
		o.OrderNumber,
		o.UserID,
		o.SellerID,
		o.Status,
		o.PaymentStatus,
		o.ShippingStatus,
		o.PaymentMethod,
		o.Subtotal,
		o.ShippingCost,
		o.TaxAmount,
		o.DiscountAmount,
		o.TotalAmount,
		o.Currency,
		o.ShippingAddress,
		o.BillingAddress,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			log.Warn("order number collision")
			return ErrOrderNumberTaken
		}
		log.Error("failed to insert order header", zap.Error(err))
		return err
	}

	log.Debug("order header inserted")
	return nil
}

func (r *repository) InsertItems(ctx context.Context, items []OrderItem) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "InsertItems"),
		zap.Int("item_count", len(items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	for i, item := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, variant_id,
				product_name, sku, image_url,
				quantity, unit_price, total_price, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.VariantID,
			item.ProductName,
			item.SKU,
			item.ImageURL,
			item.Quantity,
			item.UnitPrice,
			item.TotalPrice,
			item.CreatedAt,
		)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order items", zap.Error(err))
		return err
	}

	committed = true
	log.Debug("order items inserted")
	return nil
}

func (r *repository) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func (r *repository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID)
	return r.loadOne(ctx, "GetOrderByID", row)
}

func (r *repository) GetOrderByIDAndUser(ctx context.Context, orderID uuid.UUID, userID uint) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND user_id = $2`, orderID, userID)
	return r.loadOne(ctx, "GetOrderByIDAndUser", row)
}

func (r *repository) GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)
	return r.loadOne(ctx, "GetOrderByNumber", row)
}

func (r *repository) loadOne(ctx context.Context, method string, row *sql.Row) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("failed to scan order", zap.Error(err))
		return nil, err
	}

	items, err := r.getItems(ctx, []uuid.UUID{o.ID})
	if err != nil {
		log.Error("failed to load order items", zap.Error(err))
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *repository) GetUserOrders(ctx context.Context, userID uint, limit, page int) ([]*Order, error) {
	finalLimit := 20
	finalPage := 1
	if limit > 0 {
		finalLimit = limit
	}
	if page > 0 {
		finalPage = page
	}
	if finalLimit > 100 {
		finalLimit = 100
	}
	offset := (finalPage - 1) * finalLimit

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetUserOrders"),
		zap.Uint("user_id", userID),
		zap.Int("limit", finalLimit),
		zap.Int("page", finalPage),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, finalLimit, offset)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	var ids []uuid.UUID
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.getItems(ctx, ids)
	if err != nil {
		log.Error("failed to load order items", zap.Error(err))
		return nil, err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
	}

	log.Debug("get user orders success", zap.Int("count", len(orders)))
	return orders, nil
}

func (r *repository) getItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]OrderItem, error) {
	keys := make([]string, 0, len(orderIDs))
	for _, id := range orderIDs {
		keys = append(keys, id.String())
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, order_id, product_id, variant_id,
			product_name, sku, image_url,
			quantity, unit_price, total_price, created_at
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY created_at, id
	`, pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]OrderItem, len(orderIDs))
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.VariantID,
			&it.ProductName, &it.SKU, &it.ImageURL,
			&it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.CreatedAt,
		); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func (r *repository) UpdateState(ctx context.Context, q db.DBTX, o *Order, prev State) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateState"),
		zap.String("order_id", o.ID.String()),
		zap.String("from", prev.Status.String()),
		zap.String("to", o.Status.String()),
	)
	if q == nil {
		q = r.db
	}

	res, err := q.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
			payment_status = $2,
			shipping_status = $3,
			tracking_number = $4,
			shipped_at = $5,
			delivered_at = $6,
			cancelled_at = $7,
			updated_at = $8
		WHERE id = $9
			AND status = $10
			AND payment_status = $11
			AND shipping_status = $12
	`,
		o.Status,
		o.PaymentStatus,
		o.ShippingStatus,
		o.TrackingNumber,
		o.ShippedAt,
		o.DeliveredAt,
		o.CancelledAt,
		o.UpdatedAt,
		o.ID,
		prev.Status,
		prev.PaymentStatus,
		prev.ShippingStatus,
	)
	if err != nil {
		log.Error("failed to update order state", zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		log.Warn("order state changed underneath update")
		return ErrConcurrentUpdate
	}
	return nil
}

func (r *repository) WithTx(ctx context.Context, fn func(q db.DBTX) error) error {
	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(tx)
	})
}
