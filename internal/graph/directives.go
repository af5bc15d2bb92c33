package graph

import (
	"context"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/graph/model"
	"brytashop-be/internal/utils"

	"github.com/99designs/gqlgen/graphql"
)

// HasPermissionDirective guards a field behind a login and any of the listed permissions.
func HasPermissionDirective(ctx context.Context, obj interface{}, next graphql.Resolver, anyOf []model.Permission) (interface{}, error) {
	actor, ok := utils.GetActorFromContext(ctx)
	if !ok {
		return nil, auth.ErrNotLoggedIn
	}

	allowed := make([]auth.Permission, len(anyOf))
	for i, p := range anyOf {
		allowed[i] = auth.Permission(p)
	}
	if err := auth.HasPermission(actor.Permissions, allowed...); err != nil {
		return nil, err
	}

	return next(ctx)
}
