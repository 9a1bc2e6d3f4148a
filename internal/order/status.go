package order

import (
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusRefunded   OrderStatus = "refunded"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether the order lifecycle allows moving from s to target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled, StatusRefunded:
		return false
	}
	return false
}

// IsCancellable is true while the order has not left the warehouse.
func (s OrderStatus) IsCancellable() bool {
	return s.CanTransitionTo(StatusCancelled)
}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown order status %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return target == PaymentPaid || target == PaymentFailed || target == PaymentRefunded
	case PaymentFailed:
		return target == PaymentPaid || target == PaymentRefunded
	case PaymentPaid:
		return target == PaymentRefunded
	case PaymentRefunded:
		return false
	}
	return false
}

// ParsePaymentStatus accepts "completed" as a legacy spelling of paid.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "completed" {
		return PaymentPaid, nil
	}
	s := PaymentStatus(v)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown payment status %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

type ShippingStatus string

const (
	ShippingPending    ShippingStatus = "pending"
	ShippingProcessing ShippingStatus = "processing"
	ShippingShipped    ShippingStatus = "shipped"
	ShippingInTransit  ShippingStatus = "in_transit"
	ShippingDelivered  ShippingStatus = "delivered"
	ShippingReturned   ShippingStatus = "returned"
)

func (s ShippingStatus) IsValid() bool {
	switch s {
	case ShippingPending, ShippingProcessing, ShippingShipped,
		ShippingInTransit, ShippingDelivered, ShippingReturned:
		return true
	}
	return false
}

func (s ShippingStatus) String() string {
	return string(s)
}

func (s ShippingStatus) CanTransitionTo(target ShippingStatus) bool {
	switch s {
	case ShippingPending:
		return target == ShippingProcessing
	case ShippingProcessing:
		return target == ShippingShipped
	case ShippingShipped:
		return target == ShippingInTransit || target == ShippingDelivered
	case ShippingInTransit:
		return target == ShippingDelivered
	case ShippingDelivered:
		return target == ShippingReturned
	case ShippingReturned:
		return false
	}
	return false
}

func ParseShippingStatus(raw string) (ShippingStatus, error) {
	s := ShippingStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown shipping status %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Effects lists the work a caller must perform after a successful Transition.
type Effects struct {
	RestoreInventory bool
}

// Transition moves o to target and applies the coupled payment, shipping and
// timestamp changes. o is left untouched when the move is rejected.
func Transition(o *Order, target OrderStatus, now time.Time) (Effects, error) {
	if !target.IsValid() {
		return Effects{}, fmt.Errorf("%w: unknown order status %q", ErrInvalidStatus, target)
	}
	if !o.Status.CanTransitionTo(target) {
		if target == StatusCancelled {
			return Effects{}, fmt.Errorf("%w: order is %s", ErrNotCancellable, o.Status)
		}
		return Effects{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, target)
	}

	var fx Effects
	switch target {
	case StatusProcessing:
		o.ShippingStatus = ShippingProcessing
	case StatusShipped:
		o.ShippingStatus = ShippingShipped
		o.ShippedAt = &now
	case StatusDelivered:
		o.ShippingStatus = ShippingDelivered
		o.DeliveredAt = &now
	case StatusCancelled:
		o.PaymentStatus = PaymentRefunded
		o.CancelledAt = &now
		fx.RestoreInventory = true
	}

	o.Status = target
	o.UpdatedAt = now
	return fx, nil
}

// TransitionShipping moves only the shipping status, for carrier updates
// that do not change the order lifecycle.
func TransitionShipping(o *Order, target ShippingStatus, now time.Time) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: unknown shipping status %q", ErrInvalidStatus, target)
	}
	if !o.ShippingStatus.CanTransitionTo(target) {
		return fmt.Errorf("%w: shipping %s -> %s", ErrInvalidTransition, o.ShippingStatus, target)
	}

	o.ShippingStatus = target
	if target == ShippingDelivered && o.DeliveredAt == nil {
		o.DeliveredAt = &now
	}
	o.UpdatedAt = now
	return nil
}

// TransitionPayment moves only the payment status.
func TransitionPayment(o *Order, target PaymentStatus, now time.Time) error {
	if !o.PaymentStatus.CanTransitionTo(target) {
		return fmt.Errorf("%w: payment %s -> %s", ErrInvalidTransition, o.PaymentStatus, target)
	}
	o.PaymentStatus = target
	o.UpdatedAt = now
	return nil
}
