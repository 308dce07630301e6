package bean

import (
	"context"
	"fmt"

	apperrors "github.com/kbukum/beankit/errors"
)

// Get resolves the bean of type T.
//
//	svc, err := bean.Get[*Service](ctx, c)
func Get[T any](ctx context.Context, c *Container) (T, error) {
	var zero T
	v, err := c.Get(ctx, TypeOf[T]())
	if err != nil || v == nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, apperrors.InvalidArgument("type", fmt.Sprintf("bean is %T, not %s", v, TypeOf[T]()))
	}
	return typed, nil
}

// MustGet resolves the bean of type T and panics on error.
func MustGet[T any](ctx context.Context, c *Container) T {
	v, err := Get[T](ctx, c)
	if err != nil {
		panic(fmt.Sprintf("bean: failed to resolve %s: %v", TypeOf[T](), err))
	}
	return v
}

// TryGet resolves the bean of type T and reports whether a value was found.
func TryGet[T any](ctx context.Context, c *Container) (T, bool) {
	v, err := Get[T](ctx, c)
	if err != nil {
		return v, false
	}
	return v, !isNil(v)
}
