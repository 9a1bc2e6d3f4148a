package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront-be/internal/auth"
	"storefront-be/internal/graph"
	"storefront-be/internal/order"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testServer struct {
	orders    *MockOrderService
	reviews   *MockReviewService
	companies *MockCompanyRepository
	handler   http.Handler
}

func newTestServer() *testServer {
	ts := &testServer{
		orders:    new(MockOrderService),
		reviews:   new(MockReviewService),
		companies: new(MockCompanyRepository),
	}
	ts.handler = NewRouter(RouterConfig{
		JWTSecret: testSecret,
		GraphQL: graph.NewHandler(&graph.Resolver{
			OrderSvc:    ts.orders,
			ReviewSvc:   ts.reviews,
			CompanyRepo: ts.companies,
		}, nil),
		Payments:   NewPaymentHandler(ts.orders),
		Playground: true,
	})
	return ts
}

func token(t *testing.T, userID uint, role string) string {
	t.Helper()
	tok, err := auth.GenerateJWT(testSecret, userID, "user@example.com", role, time.Hour)
	require.NoError(t, err)
	return tok
}

func (ts *testServer) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func sampleOrder() *order.Order {
	productID := uuid.New()
	return &order.Order{
		ID:             uuid.New(),
		OrderNumber:    "ORD-LXYZ1234-ABCDEFGH",
		UserID:         7,
		Status:         order.StatusPending,
		PaymentStatus:  order.PaymentPending,
		ShippingStatus: order.ShippingPending,
		PaymentMethod:  order.PaymentMethodCard,
		Subtotal:       decimal.RequireFromString("20.00"),
		ShippingCost:   decimal.RequireFromString("5.00"),
		TaxAmount:      decimal.RequireFromString("2.00"),
		DiscountAmount: decimal.Zero,
		TotalAmount:    decimal.RequireFromString("27.00"),
		Currency:       "USD",
		Items: []order.OrderItem{{
			ID:          uuid.New(),
			ProductID:   &productID,
			ProductName: "Mug",
			SKU:         "MUG-1",
			Quantity:    2,
			UnitPrice:   decimal.RequireFromString("10.00"),
			TotalPrice:  decimal.RequireFromString("20.00"),
		}},
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer()
	w := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestMockPayment(t *testing.T) {
	t.Run("Succeeded", func(t *testing.T) {
		ts := newTestServer()
		ts.orders.On("MarkAsPaid", mock.Anything, "ORD-1", uint(7)).Return(nil)

		w := ts.do(t, http.MethodPost, "/api/payments/mock", token(t, 7, "USER"),
			map[string]any{"orderNumber": "ORD-1", "status": "succeeded"})

		assert.Equal(t, http.StatusOK, w.Code)
		ts.orders.AssertExpectations(t)
	})

	t.Run("Failed", func(t *testing.T) {
		ts := newTestServer()
		ts.orders.On("MarkAsFailed", mock.Anything, "ORD-1", uint(7)).Return(nil)

		w := ts.do(t, http.MethodPost, "/api/payments/mock", token(t, 7, "USER"),
			map[string]any{"orderNumber": "ORD-1", "status": "FAILED"})

		assert.Equal(t, http.StatusOK, w.Code)
		ts.orders.AssertExpectations(t)
	})

	t.Run("Unknown Outcome", func(t *testing.T) {
		ts := newTestServer()
		w := ts.do(t, http.MethodPost, "/api/payments/mock", token(t, 7, "USER"),
			map[string]any{"orderNumber": "ORD-1", "status": "pending"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Someone Else's Order", func(t *testing.T) {
		ts := newTestServer()
		ts.orders.On("MarkAsPaid", mock.Anything, "ORD-1", uint(8)).Return(order.ErrOrderNotFound)

		w := ts.do(t, http.MethodPost, "/api/payments/mock", token(t, 8, "USER"),
			map[string]any{"orderNumber": "ORD-1", "status": "succeeded"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMockPayment_BadBody(t *testing.T) {
	ts := newTestServer()

	w := ts.do(t, http.MethodPost, "/api/payments/mock", token(t, 7, "USER"), `{"orderNumber":"ORD-1","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/payments/mock", "", map[string]any{"orderNumber": "ORD-1", "status": "succeeded"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMockPayment_PersistenceErrorIsGeneric(t *testing.T) {
	ts := newTestServer()
	ts.orders.On("MarkAsPaid", mock.Anything, "ORD-1", uint(7)).Return(errors.New("pq: connection reset"))

	w := ts.do(t, http.MethodPost, "/api/payments/mock", token(t, 7, "USER"),
		map[string]any{"orderNumber": "ORD-1", "status": "succeeded"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, genericErrorMessage, decodeBody(t, w)["error"])
}

func TestGraphQLEndpoint(t *testing.T) {
	query := map[string]any{"query": `{ myOrders { orderNumber totalAmount } }`}

	t.Run("Authenticated caller", func(t *testing.T) {
		ts := newTestServer()
		ts.orders.On("GetUserOrders", mock.Anything, uint(7), 0, 0).Return([]*order.Order{sampleOrder()}, nil)

		w := ts.do(t, http.MethodPost, "/query", token(t, 7, "USER"), query)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"myOrders":[{"orderNumber":"ORD-LXYZ1234-ABCDEFGH","totalAmount":"27"}]}}`, w.Body.String())
	})

	t.Run("Anonymous caller is refused by @auth", func(t *testing.T) {
		ts := newTestServer()

		w := ts.do(t, http.MethodPost, "/query", "", query)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), `"message":"unauthorized"`))
		ts.orders.AssertNotCalled(t, "GetUserOrders", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Bad token is rejected before GraphQL", func(t *testing.T) {
		ts := newTestServer()
		w := ts.do(t, http.MethodPost, "/query", "not-a-jwt", query)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPlayground(t *testing.T) {
	ts := newTestServer()

	w := ts.do(t, http.MethodGet, "/playground", token(t, 7, "USER"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodGet, "/playground", token(t, 1, utils.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/query")
}
