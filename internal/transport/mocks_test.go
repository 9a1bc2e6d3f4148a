package transport

import (
	"context"

	"storefront-be/internal/company"
	"storefront-be/internal/order"
	"storefront-be/internal/review"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, input order.CreateOrderInput) (*order.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetUserOrders(ctx context.Context, userID uint, limit, page int) ([]*order.Order, error) {
	args := m.Called(ctx, userID, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderDetail(ctx context.Context, orderID uuid.UUID, userID uint, isAdmin bool) (*order.Order, error) {
	args := m.Called(ctx, orderID, userID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderTracking(ctx context.Context, orderID uuid.UUID, userID uint) (*order.Tracking, error) {
	args := m.Called(ctx, orderID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Tracking), args.Error(1)
}

func (m *MockOrderService) CancelOrder(ctx context.Context, orderID uuid.UUID, userID uint) (*order.Order, error) {
	args := m.Called(ctx, orderID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, target order.OrderStatus, trackingNumber *string) (*order.Order, error) {
	args := m.Called(ctx, orderID, target, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateShippingStatus(ctx context.Context, orderID uuid.UUID, target order.ShippingStatus) (*order.Order, error) {
	args := m.Called(ctx, orderID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) MarkAsPaid(ctx context.Context, orderNumber string, userID uint) error {
	return m.Called(ctx, orderNumber, userID).Error(0)
}

func (m *MockOrderService) MarkAsFailed(ctx context.Context, orderNumber string, userID uint) error {
	return m.Called(ctx, orderNumber, userID).Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) CreateReview(ctx context.Context, input review.CreateReviewInput) (*review.Review, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewService) CanUserReviewProduct(ctx context.Context, userID uint, productID uuid.UUID) (*review.Eligibility, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Eligibility), args.Error(1)
}

func (m *MockReviewService) ListProductReviews(ctx context.Context, productID uuid.UUID, limit, page int) ([]*review.Review, error) {
	args := m.Called(ctx, productID, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*review.Review), args.Error(1)
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) UpdateStatus(ctx context.Context, companyID uuid.UUID, status company.Status) error {
	return m.Called(ctx, companyID, status).Error(0)
}

func (m *MockCompanyRepository) UpdateCommission(ctx context.Context, companyID uuid.UUID, rate decimal.Decimal) error {
	return m.Called(ctx, companyID, rate).Error(0)
}
