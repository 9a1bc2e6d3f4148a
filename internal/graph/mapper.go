package graph

import (
	"strings"
	"time"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/order"
	"storefront-be/internal/review"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
)

func uuidPtr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func timePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func toGraphQLAddress(a *order.Address) *model.Address {
	if a == nil {
		return nil
	}
	return &model.Address{
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		Line1:         a.Line1,
		Line2:         a.Line2,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
	}
}

func toGraphQLOrderItem(it order.OrderItem) *model.OrderItem {
	return &model.OrderItem{
		ID:          it.ID.String(),
		ProductID:   uuidPtr(it.ProductID),
		VariantID:   uuidPtr(it.VariantID),
		ProductName: it.ProductName,
		Sku:         it.SKU,
		ImageURL:    it.ImageURL,
		Quantity:    int32(it.Quantity),
		UnitPrice:   it.UnitPrice,
		TotalPrice:  it.TotalPrice,
	}
}

func toGraphQLOrder(o *order.Order) *model.Order {
	if o == nil {
		return nil
	}

	items := make([]*model.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, toGraphQLOrderItem(it))
	}

	return &model.Order{
		ID:              o.ID.String(),
		OrderNumber:     o.OrderNumber,
		SellerID:        uuidPtr(o.SellerID),
		Status:          model.OrderStatus(strings.ToUpper(o.Status.String())),
		PaymentStatus:   model.PaymentStatus(strings.ToUpper(o.PaymentStatus.String())),
		ShippingStatus:  model.ShippingStatus(strings.ToUpper(o.ShippingStatus.String())),
		PaymentMethod:   model.PaymentMethod(strings.ToUpper(string(o.PaymentMethod))),
		Subtotal:        o.Subtotal,
		ShippingCost:    o.ShippingCost,
		TaxAmount:       o.TaxAmount,
		DiscountAmount:  o.DiscountAmount,
		TotalAmount:     o.TotalAmount,
		Currency:        o.Currency,
		ShippingAddress: toGraphQLAddress(&o.ShippingAddress),
		BillingAddress:  toGraphQLAddress(o.BillingAddress),
		TrackingNumber:  o.TrackingNumber,
		ShippedAt:       timePtr(o.ShippedAt),
		DeliveredAt:     timePtr(o.DeliveredAt),
		CancelledAt:     timePtr(o.CancelledAt),
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       o.UpdatedAt.Format(time.RFC3339),
		Items:           items,
	}
}

func toGraphQLOrders(orders []*order.Order) []*model.Order {
	list := make([]*model.Order, 0, len(orders))
	for _, o := range orders {
		list = append(list, toGraphQLOrder(o))
	}
	return list
}

func toGraphQLTracking(t *order.Tracking) *model.Tracking {
	return &model.Tracking{
		OrderNumber:    t.OrderNumber,
		TrackingNumber: t.TrackingNumber,
		Status:         model.OrderStatus(strings.ToUpper(t.Status.String())),
		ShippingStatus: model.ShippingStatus(strings.ToUpper(t.ShippingStatus.String())),
		ShippedAt:      timePtr(t.ShippedAt),
		DeliveredAt:    timePtr(t.DeliveredAt),
	}
}

func toGraphQLReview(r *review.Review) *model.Review {
	return &model.Review{
		ID:                 r.ID.String(),
		UserID:             int32(r.UserID),
		ProductID:          r.ProductID.String(),
		OrderID:            uuidPtr(r.OrderID),
		Rating:             int32(r.Rating),
		Title:              r.Title,
		Comment:            r.Comment,
		IsVerifiedPurchase: r.IsVerifiedPurchase,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
	}
}

func toOrderInput(userID uint, in model.CreateOrderInput) (order.CreateOrderInput, error) {
	lines := make([]order.CartLine, 0, len(in.Items))
	for _, it := range in.Items {
		productID, err := uuid.Parse(it.ProductID)
		if err != nil {
			return order.CreateOrderInput{}, errInvalidProductID
		}
		var variantID *uuid.UUID
		if it.VariantID != nil {
			v, err := uuid.Parse(*it.VariantID)
			if err != nil {
				return order.CreateOrderInput{}, errInvalidVariantID
			}
			variantID = &v
		}
		lines = append(lines, order.CartLine{
			ProductID: productID,
			VariantID: variantID,
			Quantity:  int(it.Quantity),
			UnitPrice: it.UnitPrice,
			Name:      it.Name,
			SKU:       utils.PtrString(it.Sku),
			ImageURL:  it.ImageURL,
		})
	}

	out := order.CreateOrderInput{
		UserID:        userID,
		Lines:         lines,
		PaymentMethod: order.PaymentMethod(strings.ToLower(in.PaymentMethod.String())),
		Totals: order.Totals{
			Subtotal: in.Subtotal,
			Tax:      in.Tax,
			Shipping: in.Shipping,
			Discount: in.Discount,
			Total:    in.Total,
		},
		Currency:       utils.PtrString(in.Currency),
		IdempotencyKey: strings.TrimSpace(utils.PtrString(in.IdempotencyKey)),
	}
	if in.ShippingAddress != nil {
		out.ShippingAddress = toOrderAddress(*in.ShippingAddress)
	}
	if in.BillingAddress != nil {
		billing := toOrderAddress(*in.BillingAddress)
		out.BillingAddress = &billing
	}
	return out, nil
}

func toOrderAddress(a model.AddressInput) order.Address {
	return order.Address{
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		Line1:         a.Line1,
		Line2:         a.Line2,
		City:          a.City,
		State:         utils.PtrString(a.State),
		PostalCode:    a.PostalCode,
		Country:       a.Country,
	}
}
