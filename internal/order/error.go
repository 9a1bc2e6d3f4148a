package order

import "errors"

var (
	// -- Validation & Input --
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidQuantity      = errors.New("item quantity must be at least 1")
	ErrInvalidPrice         = errors.New("item price cannot be negative")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidAddress       = errors.New("shipping address is incomplete")
	ErrInvalidCurrency      = errors.New("currency must be a three-letter code")
	ErrNegativeAmount       = errors.New("order amounts cannot be negative")
	ErrSubtotalMismatch     = errors.New("subtotal does not match the sum of line totals")
	ErrTotalMismatch        = errors.New("total does not equal subtotal + tax + shipping - discount")
	ErrMultipleSellers      = errors.New("all items in an order must come from the same seller")
	ErrDuplicateCheckout    = errors.New("checkout already submitted")

	// -- Lifecycle --
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotCancellable    = errors.New("order cannot be cancelled in its current status")
	ErrConcurrentUpdate  = errors.New("order was modified concurrently, please retry")

	// -- Access --
	ErrOrderNotFound = errors.New("order not found")
	ErrUnauthorized  = errors.New("unauthorized")

	// -- Persistence --
	ErrCreateOrderFailed = errors.New("failed to create order")
	ErrOrderNumberTaken  = errors.New("order number already exists")
)

var validationErrors = []error{
	ErrEmptyCart,
	ErrInvalidQuantity,
	ErrInvalidPrice,
	ErrInvalidPaymentMethod,
	ErrInvalidAddress,
	ErrInvalidCurrency,
	ErrNegativeAmount,
	ErrSubtotalMismatch,
	ErrTotalMismatch,
	ErrMultipleSellers,
	ErrDuplicateCheckout,
	ErrInvalidStatus,
	ErrInvalidTransition,
	ErrNotCancellable,
	ErrConcurrentUpdate,
	ErrOrderNotFound,
	ErrUnauthorized,
}

// IsValidation reports whether err is the caller's fault and carries a
// message that can be shown to the user as is.
func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
