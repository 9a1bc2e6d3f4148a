package graph

import (
	"storefront-be/internal/company"
	"storefront-be/internal/order"
	"storefront-be/internal/review"

	"github.com/99designs/gqlgen/graphql"
)

type Resolver struct {
	OrderSvc    order.Service
	ReviewSvc   review.Service
	CompanyRepo company.Repository
}

type queryResolver struct{ *Resolver }

type mutationResolver struct{ *Resolver }

func (r *Resolver) Query() *queryResolver { return &queryResolver{r} }

func (r *Resolver) Mutation() *mutationResolver { return &mutationResolver{r} }

func NewSchema(r *Resolver) graphql.ExecutableSchema {
	return newExecutableSchema(Config{
		Resolvers: r,
		Directives: DirectiveRoot{
			Auth: AuthDirective,
		},
	})
}
