package bean

import (
	"context"
	"fmt"
	"reflect"
)

// Hook is a lifecycle callback. A returned error or a panic counts as failure.
//
// ctx belongs to the Get or Shutdown running the hook. A hook that needs
// other beans must resolve them with this ctx on its own goroutine; a Get on
// an unrelated context waits for the running resolution and never returns.
type Hook func(ctx context.Context) error

// ScopeDeclarer is implemented by beans that are not request scoped.
type ScopeDeclarer interface {
	BeanScope() Scope
}

// DependencyDeclarer is implemented by beans with dependency points.
type DependencyDeclarer interface {
	Dependencies() []Dependency
}

// PostConstructor is implemented by beans with hooks to run once after all
// dependencies are injected.
type PostConstructor interface {
	PostConstruct() []Hook
}

// PreDestroyer is implemented by context beans with hooks to run at shutdown.
type PreDestroyer interface {
	PreDestroy() []Hook
}

// Dependency is one injection point: the type to resolve and the setter that
// receives the resolved value (nil when absent).
type Dependency struct {
	Type reflect.Type
	Set  func(any)
}

// Inject returns a Dependency on T that passes the resolved bean to set.
// An absent bean is passed as the zero value of T.
//
//	func (s *Service) Dependencies() []bean.Dependency {
//		return []bean.Dependency{
//			bean.Inject(func(r *Repo) { s.repo = r }),
//		}
//	}
func Inject[T any](set func(T)) Dependency {
	return Dependency{
		Type: TypeOf[T](),
		Set: func(v any) {
			if v == nil {
				var zero T
				set(zero)
				return
			}
			set(v.(T))
		},
	}
}

// TypeOf returns the reflect.Type for T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// safeCall runs fn and turns a panic into an error.
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", e)
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
