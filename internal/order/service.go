package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/db"
	"storefront-be/internal/idempotency"
	"storefront-be/internal/inventory"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/product"
	"storefront-be/internal/utils"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	GetUserOrders(ctx context.Context, userID uint, limit, page int) ([]*Order, error)
	GetOrderDetail(ctx context.Context, orderID uuid.UUID, userID uint, isAdmin bool) (*Order, error)
	GetOrderTracking(ctx context.Context, orderID uuid.UUID, userID uint) (*Tracking, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID, userID uint) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, target OrderStatus, trackingNumber *string) (*Order, error)
	UpdateShippingStatus(ctx context.Context, orderID uuid.UUID, target ShippingStatus) (*Order, error)
	MarkAsPaid(ctx context.Context, orderNumber string, userID uint) error
	MarkAsFailed(ctx context.Context, orderNumber string, userID uint) error
}

type Options struct {
	DefaultCurrency        string
	IdempotencyTTL         time.Duration
	CompensationMaxRetries uint64
	CompensationBaseDelay  time.Duration
}

func (o Options) withDefaults() Options {
	if o.DefaultCurrency == "" {
		o.DefaultCurrency = "USD"
	}
	if o.IdempotencyTTL <= 0 {
		o.IdempotencyTTL = 24 * time.Hour
	}
	if o.CompensationMaxRetries == 0 {
		o.CompensationMaxRetries = 5
	}
	if o.CompensationBaseDelay <= 0 {
		o.CompensationBaseDelay = 100 * time.Millisecond
	}
	return o
}

type service struct {
	repo     Repository
	products product.Repository
	ledger   inventory.Ledger
	carts    cart.Repository
	idem     idempotency.Store
	opts     Options

	now     func() time.Time
	numbers func() (string, error)
}

// NewService wires the order workflows. idem may be nil, in which case
// idempotency keys are ignored.
func NewService(
	repo Repository,
	products product.Repository,
	ledger inventory.Ledger,
	carts cart.Repository,
	idem idempotency.Store,
	opts Options,
) Service {
	return &service{
		repo:     repo,
		products: products,
		ledger:   ledger,
		carts:    carts,
		idem:     idem,
		opts:     opts.withDefaults(),
		now:      time.Now,
		numbers:  utils.GenerateOrderNumber,
	}
}

// CreateOrder runs checkout as a saga: header, items, stock, cart. Only the
// first two steps can fail the order; a failed item insert removes the header
// again before returning.
func (s *service) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	timer := metrics.StartTimer()
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.Uint("user_id", in.UserID),
		zap.Int("line_count", len(in.Lines)),
	)

	currency, err := s.validate(&in)
	if err != nil {
		log.Info("checkout rejected", zap.Error(err))
		return nil, err
	}

	// The key is released unless an order header outlives this call.
	keep := false
	if in.IdempotencyKey != "" && s.idem != nil {
		key := fmt.Sprintf("%d:%s", in.UserID, in.IdempotencyKey)
		acquired, err := s.idem.Acquire(ctx, key, s.opts.IdempotencyTTL)
		if err != nil {
			log.Error("failed to acquire idempotency key", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrCreateOrderFailed, err)
		}
		if !acquired {
			log.Warn("duplicate checkout submission", zap.String("idempotency_key", in.IdempotencyKey))
			return nil, ErrDuplicateCheckout
		}
		defer func() {
			if keep {
				return
			}
			if err := s.idem.Release(context.WithoutCancel(ctx), key); err != nil {
				log.Warn("failed to release idempotency key", zap.Error(err))
			}
		}()
	}

	snapshots, err := s.products.GetSnapshots(ctx, productIDs(in.Lines))
	if err != nil {
		log.Error("failed to resolve products", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCreateOrderFailed, err)
	}

	sellerID, err := singleSeller(snapshots)
	if err != nil {
		log.Info("checkout rejected", zap.Error(err))
		return nil, err
	}

	now := s.now()
	o := &Order{
		ID:              uuid.New(),
		UserID:          in.UserID,
		SellerID:        sellerID,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		ShippingStatus:  ShippingPending,
		PaymentMethod:   in.PaymentMethod,
		Subtotal:        in.Totals.Subtotal,
		ShippingCost:    in.Totals.Shipping,
		TaxAmount:       in.Totals.Tax,
		DiscountAmount:  in.Totals.Discount,
		TotalAmount:     in.Totals.Total,
		Currency:        currency,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.BillingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Step 1: header.
	if err := s.insertHeader(ctx, o); err != nil {
		log.Error("failed to create order header", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCreateOrderFailed, err)
	}
	log = log.With(
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
	)

	// Step 2: items, compensated by deleting the header.
	items := buildItems(log, o.ID, in.Lines, snapshots, now)
	if err := s.repo.InsertItems(ctx, items); err != nil {
		log.Error("failed to create order items, compensating", zap.Error(err))
		if cerr := s.compensate(ctx, o.ID); cerr != nil {
			keep = true
		}
		return nil, fmt.Errorf("%w: %v", ErrCreateOrderFailed, err)
	}
	o.Items = items
	keep = true

	// The order is committed from here on. A caller that goes away must not
	// leave it without its stock taken, or a later cancel restores stock that
	// was never removed.
	ctx = context.WithoutCancel(ctx)

	// Step 3: stock. Failures become an operational follow-up.
	for _, it := range items {
		if it.ProductID == nil {
			continue
		}
		remaining, err := s.ledger.Decrement(ctx, nil, *it.ProductID, it.Quantity)
		if err != nil {
			metrics.InventoryDecrementFailures.Inc()
			log.Warn("inventory decrement failed",
				zap.String("product_id", it.ProductID.String()),
				zap.Int("quantity", it.Quantity),
				zap.Error(err),
			)
			continue
		}
		if remaining == 0 {
			log.Info("product out of stock", zap.String("product_id", it.ProductID.String()))
		}
	}

	// Step 4: cart.
	if err := s.carts.ClearCart(ctx, in.UserID); err != nil {
		metrics.CartClearFailures.Inc()
		log.Warn("failed to clear cart after checkout", zap.Error(err))
	}

	metrics.OrdersCreated.Inc()
	log.Info("order created",
		zap.String("total", o.TotalAmount.StringFixed(2)),
		zap.Duration("duration", timer.Duration()),
	)
	return o, nil
}

// insertHeader retries once with a fresh number on an order number collision.
func (s *service) insertHeader(ctx context.Context, o *Order) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		o.OrderNumber, err = s.numbers()
		if err != nil {
			return err
		}
		err = s.repo.InsertOrder(ctx, o)
		if !errors.Is(err, ErrOrderNumberTaken) {
			return err
		}
	}
	return err
}

func (s *service) compensate(ctx context.Context, orderID uuid.UUID) error {
	ctx = context.WithoutCancel(ctx)
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "compensate"),
		zap.String("order_id", orderID.String()),
	)

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = s.opts.CompensationBaseDelay
	eb.MaxInterval = 20 * s.opts.CompensationBaseDelay
	eb.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(eb, s.opts.CompensationMaxRetries), ctx)

	err := backoff.RetryNotify(
		func() error { return s.repo.DeleteOrder(ctx, orderID) },
		b,
		func(err error, wait time.Duration) {
			metrics.CompensationRetries.Inc()
			log.Warn("compensating delete failed, retrying",
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		},
	)
	if err != nil {
		metrics.OrphanedOrders.Inc()
		log.Error("orphaned order header left behind, manual cleanup required",
			zap.Uint64("max_retries", s.opts.CompensationMaxRetries),
			zap.Error(err),
		)
		return err
	}

	log.Info("order header removed after failed checkout")
	return nil
}

func (s *service) validate(in *CreateOrderInput) (string, error) {
	if in.UserID == 0 {
		return "", ErrUnauthorized
	}
	if len(in.Lines) == 0 {
		return "", ErrEmptyCart
	}

	sum := decimal.Zero
	for i, l := range in.Lines {
		if l.Quantity < 1 {
			return "", fmt.Errorf("%w (line %d)", ErrInvalidQuantity, i+1)
		}
		if l.UnitPrice.IsNegative() {
			return "", fmt.Errorf("%w (line %d)", ErrInvalidPrice, i+1)
		}
		sum = sum.Add(l.LineTotal())
	}

	if !in.PaymentMethod.IsValid() {
		return "", ErrInvalidPaymentMethod
	}
	if err := in.ShippingAddress.Validate(); err != nil {
		return "", err
	}

	t := in.Totals
	for _, v := range []decimal.Decimal{t.Subtotal, t.Tax, t.Shipping, t.Discount, t.Total} {
		if v.IsNegative() {
			return "", ErrNegativeAmount
		}
	}
	if !t.Subtotal.Equal(sum) {
		return "", ErrSubtotalMismatch
	}
	if !t.Total.Equal(t.Expected()) {
		return "", ErrTotalMismatch
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = s.opts.DefaultCurrency
	}
	if len(currency) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return currency, nil
}

func productIDs(lines []CartLine) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}

// singleSeller enforces one seller per order.
func singleSeller(snapshots map[uuid.UUID]product.Snapshot) (*uuid.UUID, error) {
	var seller *uuid.UUID
	for _, snap := range snapshots {
		if snap.SellerID == nil {
			continue
		}
		if seller == nil {
			id := *snap.SellerID
			seller = &id
			continue
		}
		if *seller != *snap.SellerID {
			return nil, ErrMultipleSellers
		}
	}
	return seller, nil
}

// buildItems snapshots each line. Lines whose product no longer resolves keep
// the client's name and SKU with a nil product id, and nothing is decremented
// or restored for them.
func buildItems(
	log *zap.Logger,
	orderID uuid.UUID,
	lines []CartLine,
	snapshots map[uuid.UUID]product.Snapshot,
	now time.Time,
) []OrderItem {
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		it := OrderItem{
			ID:          uuid.New(),
			OrderID:     orderID,
			VariantID:   l.VariantID,
			ProductName: l.Name,
			SKU:         l.SKU,
			ImageURL:    l.ImageURL,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TotalPrice:  l.LineTotal(),
			CreatedAt:   now,
		}
		if snap, ok := snapshots[l.ProductID]; ok {
			pid := snap.ID
			it.ProductID = &pid
			it.ProductName = snap.Name
			it.SKU = snap.SKU
			if snap.ImageURL != nil {
				it.ImageURL = snap.ImageURL
			}
		} else {
			log.Warn("order line references an unknown product",
				zap.String("product_id", l.ProductID.String()),
				zap.String("product_name", l.Name),
				zap.Int("quantity", l.Quantity),
			)
		}
		items = append(items, it)
	}
	return items
}

func (s *service) GetUserOrders(ctx context.Context, userID uint, limit, page int) ([]*Order, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	return s.repo.GetUserOrders(ctx, userID, limit, page)
}

func (s *service) GetOrderDetail(ctx context.Context, orderID uuid.UUID, userID uint, isAdmin bool) (*Order, error) {
	if isAdmin {
		return s.repo.GetOrderByID(ctx, orderID)
	}
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	return s.repo.GetOrderByIDAndUser(ctx, orderID, userID)
}

func (s *service) GetOrderTracking(ctx context.Context, orderID uuid.UUID, userID uint) (*Tracking, error) {
	o, err := s.GetOrderDetail(ctx, orderID, userID, false)
	if err != nil {
		return nil, err
	}
	return &Tracking{
		OrderNumber:    o.OrderNumber,
		TrackingNumber: o.TrackingNumber,
		Status:         o.Status,
		ShippingStatus: o.ShippingStatus,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
	}, nil
}

// CancelOrder cancels the buyer's own order and returns its stock. A second
// cancel of the same order is rejected and restores nothing.
func (s *service) CancelOrder(ctx context.Context, orderID uuid.UUID, userID uint) (*Order, error) {
	timer := metrics.StartTimer()
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelOrder"),
		zap.String("order_id", orderID.String()),
		zap.Uint("user_id", userID),
	)

	if userID == 0 {
		return nil, ErrUnauthorized
	}

	o, err := s.repo.GetOrderByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.applyTransition(ctx, o, StatusCancelled, nil); err != nil {
		log.Info("cancel rejected", zap.String("status", o.Status.String()), zap.Error(err))
		return nil, err
	}

	log.Info("order cancelled", zap.Duration("duration", timer.Duration()))
	return o, nil
}

// UpdateOrderStatus is the admin path through the lifecycle. Cancelling here
// restores stock exactly like a buyer cancel.
func (s *service) UpdateOrderStatus(
	ctx context.Context,
	orderID uuid.UUID,
	target OrderStatus,
	trackingNumber *string,
) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", orderID.String()),
		zap.String("target", target.String()),
	)

	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if trackingNumber != nil && target != StatusShipped {
		return nil, fmt.Errorf("%w: tracking number only applies when shipping", ErrInvalidTransition)
	}

	if err := s.applyTransition(ctx, o, target, trackingNumber); err != nil {
		log.Info("status update rejected", zap.Error(err))
		return nil, err
	}

	log.Info("order status updated")
	return o, nil
}

func (s *service) applyTransition(ctx context.Context, o *Order, target OrderStatus, trackingNumber *string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("order_id", o.ID.String()),
	)

	prev := o.State()
	fx, err := Transition(o, target, s.now())
	if err != nil {
		return err
	}
	if trackingNumber != nil {
		o.TrackingNumber = trackingNumber
	}

	err = s.repo.WithTx(ctx, func(q db.DBTX) error {
		if err := s.repo.UpdateState(ctx, q, o, prev); err != nil {
			return err
		}
		if !fx.RestoreInventory {
			return nil
		}
		for _, it := range o.Items {
			if it.ProductID == nil {
				continue
			}
			_, err := s.ledger.Restore(ctx, q, *it.ProductID, it.Quantity)
			if errors.Is(err, inventory.ErrProductNotFound) {
				log.Warn("product gone, nothing to restore",
					zap.String("product_id", it.ProductID.String()))
				continue
			}
			if err != nil {
				metrics.InventoryRestoreFailures.Inc()
				return fmt.Errorf("failed to restore stock: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if fx.RestoreInventory {
		metrics.OrdersCancelled.Inc()
	}
	return nil
}

// UpdateShippingStatus records carrier progress after the order has shipped.
// Delivery also completes the order.
func (s *service) UpdateShippingStatus(ctx context.Context, orderID uuid.UUID, target ShippingStatus) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateShippingStatus"),
		zap.String("order_id", orderID.String()),
		zap.String("target", target.String()),
	)

	switch target {
	case ShippingInTransit, ShippingDelivered, ShippingReturned:
	default:
		return nil, fmt.Errorf("%w: shipping %s is set through the order status", ErrInvalidTransition, target)
	}

	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if target == ShippingDelivered && o.Status == StatusShipped {
		if !o.ShippingStatus.CanTransitionTo(ShippingDelivered) {
			return nil, fmt.Errorf("%w: shipping %s -> %s", ErrInvalidTransition, o.ShippingStatus, target)
		}
		if err := s.applyTransition(ctx, o, StatusDelivered, nil); err != nil {
			return nil, err
		}
		log.Info("order delivered")
		return o, nil
	}

	prev := o.State()
	if err := TransitionShipping(o, target, s.now()); err != nil {
		log.Info("shipping update rejected", zap.Error(err))
		return nil, err
	}
	if err := s.repo.UpdateState(ctx, nil, o, prev); err != nil {
		return nil, err
	}

	log.Info("shipping status updated")
	return o, nil
}

func (s *service) MarkAsPaid(ctx context.Context, orderNumber string, userID uint) error {
	return s.setPayment(ctx, "MarkAsPaid", orderNumber, userID, PaymentPaid)
}

func (s *service) MarkAsFailed(ctx context.Context, orderNumber string, userID uint) error {
	return s.setPayment(ctx, "MarkAsFailed", orderNumber, userID, PaymentFailed)
}

func (s *service) setPayment(ctx context.Context, method, orderNumber string, userID uint, target PaymentStatus) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", method),
		zap.String("order_number", orderNumber),
	)

	o, err := s.repo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return ErrOrderNotFound
	}

	if o.PaymentStatus == target {
		log.Info("payment status already set")
		return nil
	}
	if o.Status == StatusCancelled || o.Status == StatusRefunded {
		return fmt.Errorf("%w: order is %s", ErrInvalidTransition, o.Status)
	}

	prev := o.State()
	if err := TransitionPayment(o, target, s.now()); err != nil {
		return err
	}
	if err := s.repo.UpdateState(ctx, nil, o, prev); err != nil {
		return err
	}

	log.Info("payment status updated", zap.String("payment_status", target.String()))
	return nil
}
