package middleware

import (
	"context"
	"fmt"

	"brytashop-be/internal/logger"
	"brytashop-be/internal/transport"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"
)

// strictFields are the root GraphQL fields limited by the strict tier.
var strictFields = map[string]bool{
	"signin":              true,
	"signup":              true,
	"requestReset":        true,
	"resetPassword":       true,
	"createOrder":         true,
	"createOrderPaystack": true,
}

// OperationLimiter applies the strict tier to credential and checkout
// operations, decided from the parsed document rather than client headers.
type OperationLimiter struct {
	limiter *RateLimiter
}

var _ interface {
	graphql.HandlerExtension
	graphql.OperationInterceptor
} = (*OperationLimiter)(nil)

func (l *RateLimiter) Operations() *OperationLimiter {
	return &OperationLimiter{limiter: l}
}

func (o *OperationLimiter) ExtensionName() string {
	return "OperationLimiter"
}

func (o *OperationLimiter) Validate(graphql.ExecutableSchema) error {
	return nil
}

func (o *OperationLimiter) InterceptOperation(ctx context.Context, next graphql.OperationHandler) graphql.ResponseHandler {
	if !graphql.HasOperationContext(ctx) {
		return next(ctx)
	}
	oc := graphql.GetOperationContext(ctx)
	r := transport.GetRequest(ctx)
	if r == nil || oc.Operation == nil || !selectsStrictField(oc.Operation.SelectionSet) {
		return next(ctx)
	}
	if o.limiter.resolveTier(r).name == tierInternal.name {
		return next(ctx)
	}

	key := fmt.Sprintf("%s:%s", identityOf(ctx, r.RemoteAddr), tierStrict.name)
	if !o.limiter.get(key, tierStrict).Allow() {
		logger.FromCtx(ctx).Warn("graphql operation rate limited",
			zap.String("operation", oc.OperationName),
			zap.String("identity", key),
		)
		return graphql.OneShot(graphql.ErrorResponse(ctx, "too many attempts, please try again later"))
	}
	return next(ctx)
}

func selectsStrictField(set ast.SelectionSet) bool {
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			if strictFields[s.Name] {
				return true
			}
		case *ast.InlineFragment:
			if selectsStrictField(s.SelectionSet) {
				return true
			}
		case *ast.FragmentSpread:
			if s.Definition != nil && selectsStrictField(s.Definition.SelectionSet) {
				return true
			}
		}
	}
	return false
}
