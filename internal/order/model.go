package order

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodCOD          PaymentMethod = "cod"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodEWallet      PaymentMethod = "e_wallet"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodCOD, PaymentMethodBankTransfer, PaymentMethodEWallet:
		return true
	}
	return false
}

type Order struct {
	ID             uuid.UUID
	OrderNumber    string
	UserID         uint
	SellerID       *uuid.UUID
	Status         OrderStatus
	PaymentStatus  PaymentStatus
	ShippingStatus ShippingStatus
	PaymentMethod  PaymentMethod

	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	Currency       string

	ShippingAddress Address
	BillingAddress  *Address

	TrackingNumber *string
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items []OrderItem
}

// OrderItem is the buyer's receipt of record for one line. It is written
// once at checkout and never updated.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   *uuid.UUID
	VariantID   *uuid.UUID
	ProductName string
	SKU         string
	ImageURL    *string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	CreatedAt   time.Time
}

type Address struct {
	RecipientName string  `json:"recipient_name"`
	Phone         string  `json:"phone"`
	Line1         string  `json:"line1"`
	Line2         *string `json:"line2,omitempty"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	PostalCode    string  `json:"postal_code"`
	Country       string  `json:"country"`
}

func (a Address) Validate() error {
	required := []string{a.RecipientName, a.Phone, a.Line1, a.City, a.PostalCode, a.Country}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return ErrInvalidAddress
		}
	}
	return nil
}

// Value stores the address as JSONB.
func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Address) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = Address{}
		return nil
	}
	return errors.New("address: unsupported scan type")
}

// CartLine is one resolved line of the buyer's cart at checkout time.
type CartLine struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal

	// Used when the product no longer resolves.
	Name     string
	SKU      string
	ImageURL *string
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Expected is subtotal + tax + shipping - discount.
func (t Totals) Expected() decimal.Decimal {
	return t.Subtotal.Add(t.Tax).Add(t.Shipping).Sub(t.Discount)
}

type CreateOrderInput struct {
	UserID          uint
	Lines           []CartLine
	ShippingAddress Address
	BillingAddress  *Address
	PaymentMethod   PaymentMethod
	Totals          Totals
	Currency        string
	IdempotencyKey  string
}

type Tracking struct {
	OrderNumber    string         `json:"orderNumber"`
	TrackingNumber *string        `json:"trackingNumber,omitempty"`
	Status         OrderStatus    `json:"status"`
	ShippingStatus ShippingStatus `json:"shippingStatus"`
	ShippedAt      *time.Time     `json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time     `json:"deliveredAt,omitempty"`
}
