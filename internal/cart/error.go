package cart

import "errors"

var (
	ErrInvalidUser     = errors.New("user ID is required")
	ErrFailedClearCart = errors.New("failed to clear cart")
)
