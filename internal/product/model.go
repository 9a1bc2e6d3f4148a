package product

import "github.com/google/uuid"

// Snapshot is the subset of a product copied onto an order line at purchase time.
type Snapshot struct {
	ID       uuid.UUID
	SellerID *uuid.UUID
	Name     string
	SKU      string
	ImageURL *string
}
