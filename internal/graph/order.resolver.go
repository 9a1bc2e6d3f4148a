package graph

import (
	"context"
	"fmt"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/order"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
)

func parseOrderID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errInvalidOrderID
	}
	return id, nil
}

func orderFailure(ctx context.Context, method string, err error) *model.OrderResponse {
	return &model.OrderResponse{
		Success: false,
		Message: utils.StrPtr(userMessage(ctx, method, err)),
	}
}

// --- MUTATIONS ---

func (r *mutationResolver) CreateOrder(ctx context.Context, input model.CreateOrderInput) (*model.OrderResponse, error) {
	userID, _ := utils.GetUserIDFromContext(ctx)

	in, err := toOrderInput(userID, input)
	if err != nil {
		return orderFailure(ctx, "CreateOrder", err), nil
	}

	newOrder, err := r.OrderSvc.CreateOrder(ctx, in)
	if err != nil {
		return orderFailure(ctx, "CreateOrder", err), nil
	}

	return &model.OrderResponse{
		Success: true,
		Message: utils.StrPtr("Order created successfully"),
		Order:   toGraphQLOrder(newOrder),
	}, nil
}

func (r *mutationResolver) CancelOrder(ctx context.Context, orderID string) (*model.OrderResponse, error) {
	oid, err := parseOrderID(orderID)
	if err != nil {
		return orderFailure(ctx, "CancelOrder", err), nil
	}
	userID, _ := utils.GetUserIDFromContext(ctx)

	cancelled, err := r.OrderSvc.CancelOrder(ctx, oid, userID)
	if err != nil {
		return orderFailure(ctx, "CancelOrder", err), nil
	}

	return &model.OrderResponse{
		Success: true,
		Message: utils.StrPtr("Order cancelled"),
		Order:   toGraphQLOrder(cancelled),
	}, nil
}

func (r *mutationResolver) UpdateOrderStatus(ctx context.Context, input model.UpdateOrderStatusInput) (*model.OrderResponse, error) {
	oid, err := parseOrderID(input.OrderID)
	if err != nil {
		return orderFailure(ctx, "UpdateOrderStatus", err), nil
	}

	status, err := order.ParseOrderStatus(input.Status.String())
	if err != nil {
		return orderFailure(ctx, "UpdateOrderStatus", err), nil
	}

	updated, err := r.OrderSvc.UpdateOrderStatus(ctx, oid, status, input.TrackingNumber)
	if err != nil {
		return orderFailure(ctx, "UpdateOrderStatus", err), nil
	}

	return &model.OrderResponse{
		Success: true,
		Message: utils.StrPtr(fmt.Sprintf("Order updated to %s", status)),
		Order:   toGraphQLOrder(updated),
	}, nil
}

func (r *mutationResolver) UpdateShippingStatus(ctx context.Context, input model.UpdateShippingStatusInput) (*model.OrderResponse, error) {
	oid, err := parseOrderID(input.OrderID)
	if err != nil {
		return orderFailure(ctx, "UpdateShippingStatus", err), nil
	}

	status, err := order.ParseShippingStatus(input.ShippingStatus.String())
	if err != nil {
		return orderFailure(ctx, "UpdateShippingStatus", err), nil
	}

	updated, err := r.OrderSvc.UpdateShippingStatus(ctx, oid, status)
	if err != nil {
		return orderFailure(ctx, "UpdateShippingStatus", err), nil
	}

	return &model.OrderResponse{
		Success: true,
		Message: utils.StrPtr(fmt.Sprintf("Shipping updated to %s", status)),
		Order:   toGraphQLOrder(updated),
	}, nil
}

// --- QUERIES ---

func (r *queryResolver) MyOrders(ctx context.Context, limit, page *int32) ([]*model.Order, error) {
	userID, _ := utils.GetUserIDFromContext(ctx)

	orders, err := r.OrderSvc.GetUserOrders(ctx, userID, intOrZero(limit), intOrZero(page))
	if err != nil {
		return nil, queryError(ctx, "MyOrders", err)
	}
	return toGraphQLOrders(orders), nil
}

func (r *queryResolver) OrderDetail(ctx context.Context, orderID string) (*model.Order, error) {
	oid, err := parseOrderID(orderID)
	if err != nil {
		return nil, err
	}
	userID, _ := utils.GetUserIDFromContext(ctx)

	o, err := r.OrderSvc.GetOrderDetail(ctx, oid, userID, utils.IsAdmin(ctx))
	if err != nil {
		return nil, queryError(ctx, "OrderDetail", err)
	}
	return toGraphQLOrder(o), nil
}

func (r *queryResolver) OrderTracking(ctx context.Context, orderID string) (*model.Tracking, error) {
	oid, err := parseOrderID(orderID)
	if err != nil {
		return nil, err
	}
	userID, _ := utils.GetUserIDFromContext(ctx)

	t, err := r.OrderSvc.GetOrderTracking(ctx, oid, userID)
	if err != nil {
		return nil, queryError(ctx, "OrderTracking", err)
	}
	return toGraphQLTracking(t), nil
}

func intOrZero(v *int32) int {
	if v == nil {
		return 0
	}
	return int(*v)
}
