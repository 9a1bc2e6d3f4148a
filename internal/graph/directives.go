package graph

import (
	"context"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/utils"

	"github.com/99designs/gqlgen/graphql"
)

// AuthDirective implements @auth. Without a role argument any signed-in
// caller passes; @auth(role: ADMIN) additionally requires the admin role.
func AuthDirective(ctx context.Context, obj any, next graphql.Resolver, role *model.Role) (any, error) {
	if _, ok := utils.GetUserIDFromContext(ctx); !ok {
		return nil, errUnauthorized
	}

	if role != nil && *role == model.RoleAdmin && !utils.IsAdmin(ctx) {
		return nil, errForbidden
	}
	return next(ctx)
}
