// Package bean provides a container that creates, scopes, wires and tears
// down application service objects ("beans") on demand.
//
// # Scopes
//
// A bean type is request scoped unless it implements ScopeDeclarer or is
// registered WithScope:
//
//   - Request: every Get constructs a fresh instance. Nothing is stored.
//   - Context: one instance per type for the lifetime of the container.
//   - Session: one instance per type, evicted by the session store after a
//     period of inactivity.
//
// # Declaring a bean
//
// Beans declare their needs with small interfaces instead of struct tags:
//
//	type Service struct {
//		repo *Repo
//	}
//
//	func (s *Service) BeanScope() bean.Scope { return bean.Context }
//
//	func (s *Service) Dependencies() []bean.Dependency {
//		return []bean.Dependency{bean.Inject(func(r *Repo) { s.repo = r })}
//	}
//
//	func (s *Service) PostConstruct() []bean.Hook { return []bean.Hook{s.open} }
//	func (s *Service) PreDestroy() []bean.Hook    { return []bean.Hook{s.close} }
//
// A pointer-to-struct type with no registered factory is constructed as its
// zero value. Other types need a factory:
//
//	bean.Register(c, func() (Clock, error) { return realClock{}, nil }, bean.WithScope(bean.Context))
//
// # Cycles
//
// Context and session beans are stored before their dependencies are
// resolved. When A and B depend on each other, resolving A injects B, which
// receives the same A instance even though A's own injection has not
// finished yet. A request bean may reach itself again through a context or
// session bean, which ends the cycle there. A loop made only of request beans
// fails with ErrRequestCycle.
//
// # Hooks
//
// PostConstruct and PreDestroy hooks receive the context of the running Get
// or Shutdown. Passing that context to Get from inside a hook joins the
// running resolution:
//
//	func (s *Service) open(ctx context.Context) error {
//		cache, err := bean.Get[*Cache](ctx, s.c)
//		...
//	}
//
// During Shutdown such a Get returns beans that are still alive and fails
// with ErrShuttingDown for anything that would need constructing.
//
// # Shutdown
//
// Shutdown runs PreDestroy hooks of context beans in reverse construction
// order and empties every store, whatever the hooks return.
package bean
