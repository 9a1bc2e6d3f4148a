package graph

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/utils"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"
)

// NewHandler serves the schema over POST. A nil limiter disables the
// checkout throttle.
func NewHandler(r *Resolver, limiter *middleware.RateLimiter) http.Handler {
	srv := handler.New(NewSchema(r))
	srv.AddTransport(transport.POST{})
	srv.Use(CheckoutLimit{Limiter: limiter})
	srv.SetRecoverFunc(func(ctx context.Context, err any) error {
		logger.FromCtx(ctx).Error("graphql panic",
			zap.String("layer", "graph"),
			zap.Any("panic", err),
		)
		return errors.New(genericErrorMessage)
	})
	return srv
}

const checkoutField = "createOrder"

// CheckoutLimit applies the strict rate tier to operations that place an
// order, sharing the bucket the HTTP limiter uses for the same caller.
type CheckoutLimit struct {
	Limiter *middleware.RateLimiter
}

var _ interface {
	graphql.HandlerExtension
	graphql.OperationInterceptor
} = CheckoutLimit{}

func (CheckoutLimit) ExtensionName() string { return "CheckoutLimit" }

func (CheckoutLimit) Validate(graphql.ExecutableSchema) error { return nil }

func (c CheckoutLimit) InterceptOperation(ctx context.Context, next graphql.OperationHandler) graphql.ResponseHandler {
	if c.Limiter == nil || !placesOrder(graphql.GetOperationContext(ctx)) {
		return next(ctx)
	}

	userID, ok := utils.GetUserIDFromContext(ctx)
	if ok && !c.Limiter.AllowStrict(fmt.Sprintf("user:%d", userID)) {
		logger.FromCtx(ctx).Warn("checkout rate limited", zap.String("layer", "graph"))
		return graphql.OneShot(graphql.ErrorResponse(ctx, "%s", http.StatusText(http.StatusTooManyRequests)))
	}
	return next(ctx)
}

func placesOrder(opCtx *graphql.OperationContext) bool {
	if opCtx == nil || opCtx.Operation == nil || opCtx.Operation.Operation != ast.Mutation {
		return false
	}
	for _, f := range graphql.CollectFields(opCtx, opCtx.Operation.SelectionSet, []string{"Mutation"}) {
		if f.Name == checkoutField {
			return true
		}
	}
	return false
}
