package graph

import (
	"context"
	"errors"
	"fmt"

	"brytashop-be/internal/logger"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

var ErrInvalidID = errors.New("invalid id")

// ErrorPresenter logs resolver failures before they are rendered.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	gqlErr := graphql.DefaultErrorPresenter(ctx, err)

	fields := []zap.Field{zap.Error(err)}
	if fc := graphql.GetFieldContext(ctx); fc != nil {
		fields = append(fields, zap.String("field", fc.Field.Name))
	}
	logger.FromCtx(ctx).Warn("graphql error", fields...)

	return gqlErr
}

// RecoverFunc turns a resolver panic into a generic error.
func RecoverFunc(ctx context.Context, p interface{}) error {
	logger.FromCtx(ctx).Error("graphql panic", zap.Any("panic", p), zap.Stack("stack"))
	return fmt.Errorf("internal server error")
}
