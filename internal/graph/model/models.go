// Package model holds the GraphQL-facing types. JSON tags carry the schema
// field names; the executor projects these values onto each selection set.
package model

import "github.com/shopspring/decimal"

type Address struct {
	RecipientName string  `json:"recipientName"`
	Phone         string  `json:"phone"`
	Line1         string  `json:"line1"`
	Line2         *string `json:"line2"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	PostalCode    string  `json:"postalCode"`
	Country       string  `json:"country"`
}

type OrderItem struct {
	ID          string          `json:"id"`
	ProductID   *string         `json:"productId"`
	VariantID   *string         `json:"variantId"`
	ProductName string          `json:"productName"`
	Sku         string          `json:"sku"`
	ImageURL    *string         `json:"imageUrl"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	SellerID        *string         `json:"sellerId"`
	Status          OrderStatus     `json:"status"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	ShippingStatus  ShippingStatus  `json:"shippingStatus"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Currency        string          `json:"currency"`
	ShippingAddress *Address        `json:"shippingAddress"`
	BillingAddress  *Address        `json:"billingAddress"`
	TrackingNumber  *string         `json:"trackingNumber"`
	ShippedAt       *string         `json:"shippedAt"`
	DeliveredAt     *string         `json:"deliveredAt"`
	CancelledAt     *string         `json:"cancelledAt"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
	Items           []*OrderItem    `json:"items"`
}

type Tracking struct {
	OrderNumber    string         `json:"orderNumber"`
	TrackingNumber *string        `json:"trackingNumber"`
	Status         OrderStatus    `json:"status"`
	ShippingStatus ShippingStatus `json:"shippingStatus"`
	ShippedAt      *string        `json:"shippedAt"`
	DeliveredAt    *string        `json:"deliveredAt"`
}

type Review struct {
	ID                 string  `json:"id"`
	UserID             int32   `json:"userId"`
	ProductID          string  `json:"productId"`
	OrderID            *string `json:"orderId"`
	Rating             int32   `json:"rating"`
	Title              string  `json:"title"`
	Comment            string  `json:"comment"`
	IsVerifiedPurchase bool    `json:"isVerifiedPurchase"`
	CreatedAt          string  `json:"createdAt"`
}

type ReviewEligibility struct {
	CanReview bool    `json:"canReview"`
	Reason    *string `json:"reason"`
	OrderID   *string `json:"orderId"`
}

type OrderResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message"`
	Order   *Order  `json:"order"`
}

type ReviewResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message"`
	Review  *Review `json:"review"`
}

type MutationResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message"`
}

type AddressInput struct {
	RecipientName string  `json:"recipientName"`
	Phone         string  `json:"phone"`
	Line1         string  `json:"line1"`
	Line2         *string `json:"line2"`
	City          string  `json:"city"`
	State         *string `json:"state"`
	PostalCode    string  `json:"postalCode"`
	Country       string  `json:"country"`
}

type OrderLineInput struct {
	ProductID string          `json:"productId"`
	VariantID *string         `json:"variantId"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Name      string          `json:"name"`
	Sku       *string         `json:"sku"`
	ImageURL  *string         `json:"imageUrl"`
}

type CreateOrderInput struct {
	Items           []*OrderLineInput `json:"items"`
	ShippingAddress *AddressInput     `json:"shippingAddress"`
	BillingAddress  *AddressInput     `json:"billingAddress"`
	PaymentMethod   PaymentMethod     `json:"paymentMethod"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	Tax             decimal.Decimal   `json:"tax"`
	Shipping        decimal.Decimal   `json:"shipping"`
	Discount        decimal.Decimal   `json:"discount"`
	Total           decimal.Decimal   `json:"total"`
	Currency        *string           `json:"currency"`
	IdempotencyKey  *string           `json:"idempotencyKey"`
}

type UpdateOrderStatusInput struct {
	OrderID        string      `json:"orderId"`
	Status         OrderStatus `json:"status"`
	TrackingNumber *string     `json:"trackingNumber"`
}

type UpdateShippingStatusInput struct {
	OrderID        string         `json:"orderId"`
	ShippingStatus ShippingStatus `json:"shippingStatus"`
}

type CreateReviewInput struct {
	ProductID string  `json:"productId"`
	Rating    int32   `json:"rating"`
	Title     *string `json:"title"`
	Comment   *string `json:"comment"`
}
