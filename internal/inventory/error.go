package inventory

import "errors"

var (
	ErrInvalidQuantity = errors.New("stock adjustment quantity must be positive")
	ErrProductNotFound = errors.New("product not found")
)
