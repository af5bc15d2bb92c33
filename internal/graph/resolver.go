package graph

//go:generate go run github.com/99designs/gqlgen generate

import (
	"brytashop-be/internal/cart"
	"brytashop-be/internal/item"
	"brytashop-be/internal/order"
	"brytashop-be/internal/user"

	"github.com/99designs/gqlgen/graphql"
)

type Resolver struct {
	ItemSvc  item.Service
	UserSvc  user.Service
	CartSvc  cart.Service
	OrderSvc order.Service

	// SecureCookies marks the session cookie Secure (production only).
	SecureCookies bool
}

func NewSchema(r *Resolver) graphql.ExecutableSchema {
	return NewExecutableSchema(Config{
		Resolvers: r,
		Directives: DirectiveRoot{
			HasPermission: HasPermissionDirective,
		},
	})
}

func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }
func (r *Resolver) Query() QueryResolver       { return &queryResolver{r} }
func (r *Resolver) User() UserResolver         { return &userResolver{r} }
func (r *Resolver) Order() OrderResolver       { return &orderResolver{r} }

type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
type userResolver struct{ *Resolver }
type orderResolver struct{ *Resolver }
