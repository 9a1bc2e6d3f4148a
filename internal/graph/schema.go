package graph

import (
	"context"
	_ "embed"

	"storefront-be/internal/graph/model"

	"github.com/99designs/gqlgen/graphql"
	"github.com/shopspring/decimal"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphqls
var schemaSource string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSource})

type DirectiveRoot struct {
	Auth func(ctx context.Context, obj any, next graphql.Resolver, role *model.Role) (res any, err error)
}

type Config struct {
	Resolvers  *Resolver
	Directives DirectiveRoot
}

// fieldFunc resolves one root field from its coerced argument map.
type fieldFunc func(ctx context.Context, args map[string]any) (any, error)

type executableSchema struct {
	resolvers  *Resolver
	directives DirectiveRoot
	fields     map[string]fieldFunc
}

func newExecutableSchema(cfg Config) *executableSchema {
	es := &executableSchema{resolvers: cfg.Resolvers, directives: cfg.Directives}
	es.fields = es.rootFields()
	return es
}

func (e *executableSchema) Schema() *ast.Schema {
	return parsedSchema
}

func (e *executableSchema) Complexity(ctx context.Context, typeName, field string, childComplexity int, args map[string]any) (int, bool) {
	return 0, false
}

// result erases a resolver's concrete return type. A failed resolver yields
// an untyped nil so the field serialises as null.
func result[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (e *executableSchema) rootFields() map[string]fieldFunc {
	q, m := e.resolvers.Query(), e.resolvers.Mutation()

	type page struct {
		Limit *int32 `json:"limit"`
		Page  *int32 `json:"page"`
	}
	type byOrder struct {
		OrderID string `json:"orderId"`
	}
	type byProduct struct {
		ProductID string `json:"productId"`
		page
	}

	return map[string]fieldFunc{
		"Query.myOrders": func(ctx context.Context, args map[string]any) (any, error) {
			var a page
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return result(q.MyOrders(ctx, a.Limit, a.Page))
		},
		"Query.orderDetail": func(ctx context.Context, args map[string]any) (any, error) {
			var a byOrder
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return result(q.OrderDetail(ctx, a.OrderID))
		},
		"Query.orderTracking": func(ctx context.Context, args map[string]any) (any, error) {
			var a byOrder
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return result(q.OrderTracking(ctx, a.OrderID))
		},
		"Query.productReviews": func(ctx context.Context, args map[string]any) (any, error) {
			var a byProduct
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return result(q.ProductReviews(ctx, a.ProductID, a.Limit, a.Page))
		},
		"Query.reviewEligibility": func(ctx context.Context, args map[string]any) (any, error) {
			var a byProduct
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return result(q.ReviewEligibility(ctx, a.ProductID))
		},
		"Mutation.createOrder": func(ctx context.Context, args map[string]any) (any, error) {
			var a struct {
				Input model.CreateOrderInput `json:"input"`
			}
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return result(m.CreateOrder(ctx, a.Input))
		},
		"Mutation.cancelOrder": func(ctx context.Context, args map[string]any) (any, error) {
			var a byOrder
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return result(m.CancelOrder(ctx, a.OrderID))
		},
		"Mutation.updateOrderStatus": func(ctx context.Context, args map[string]any) (any, error) {
			var a struct {
				Input model.UpdateOrderStatusInput `json:"input"`
			}
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return result(m.UpdateOrderStatus(ctx, a.Input))
		},
		"Mutation.updateShippingStatus": func(ctx context.Context, args map[string]any) (any, error) {
			var a struct {
				Input model.UpdateShippingStatusInput `json:"input"`
			}
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return result(m.UpdateShippingStatus(ctx, a.Input))
		},
		"Mutation.createReview": func(ctx context.Context, args map[string]any) (any, error) {
			var a struct {
				Input model.CreateReviewInput `json:"input"`
			}
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return result(m.CreateReview(ctx, a.Input))
		},
		"Mutation.updateCompanyStatus": func(ctx context.Context, args map[string]any) (any, error) {
			var a struct {
				CompanyID string              `json:"companyId"`
				Status    model.CompanyStatus `json:"status"`
			}
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return result(m.UpdateCompanyStatus(ctx, a.CompanyID, a.Status))
		},
		"Mutation.updateCompanyCommission": func(ctx context.Context, args map[string]any) (any, error) {
			var a struct {
				CompanyID      string          `json:"companyId"`
				CommissionRate decimal.Decimal `json:"commissionRate"`
			}
			if err := decodeArgs(args, &a); err != nil {
				return nil, err
			}
			return result(m.UpdateCompanyCommission(ctx, a.CompanyID, a.CommissionRate))
		},
	}
}
