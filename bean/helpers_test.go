package bean

import (
	"context"
	"sync"

	"github.com/kbukum/beankit/logger"
)

func newTestContainer(opts ...Option) *Container {
	return New(append([]Option{WithLogger(logger.NewNop())}, opts...)...)
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// tracked is a context bean that records its teardown.
type tracked struct {
	name         string
	rec          *recorder
	destroyErr   error
	destroyPanic bool
}

func (t *tracked) BeanScope() Scope { return Context }

func (t *tracked) PreDestroy() []Hook {
	return []Hook{
		func(context.Context) error {
			t.rec.add("destroy:" + t.name)
			if t.destroyPanic {
				panic("teardown exploded")
			}
			return t.destroyErr
		},
		func(context.Context) error {
			t.rec.add("destroy2:" + t.name)
			return nil
		},
	}
}

type beanA struct{ tracked }
type beanB struct{ tracked }
type beanC struct{ tracked }

type contextBean struct{ n int }

func (*contextBean) BeanScope() Scope { return Context }

type requestBean struct{ n int }

type sessionBean struct{ n int }

func (*sessionBean) BeanScope() Scope { return Session }

type cycA struct{ b *cycB }

func (*cycA) BeanScope() Scope { return Context }
func (a *cycA) Dependencies() []Dependency {
	return []Dependency{Inject(func(b *cycB) { a.b = b })}
}

type cycB struct{ a *cycA }

func (*cycB) BeanScope() Scope { return Context }
func (b *cycB) Dependencies() []Dependency {
	return []Dependency{Inject(func(a *cycA) { b.a = a })}
}

type leaf struct{}

func (*leaf) BeanScope() Scope { return Context }

type wired struct {
	l      *leaf
	r      *requestBean
	calls  int
	sawDep bool
	order  []string
}

func (*wired) BeanScope() Scope { return Context }

func (w *wired) Dependencies() []Dependency {
	return []Dependency{
		Inject(func(l *leaf) { w.l = l }),
		{Type: nil, Set: func(any) { panic("nil dependency must be skipped") }},
		Inject(func(r *requestBean) { w.r = r }),
	}
}

func (w *wired) PostConstruct() []Hook {
	return []Hook{
		func(context.Context) error {
			w.calls++
			w.sawDep = w.l != nil && w.r != nil
			w.order = append(w.order, "first")
			return nil
		},
		func(context.Context) error {
			w.order = append(w.order, "second")
			return nil
		},
	}
}

// selfish depends on itself while request scoped.
type selfish struct{ self *selfish }

func (s *selfish) Dependencies() []Dependency {
	return []Dependency{Inject(func(o *selfish) { s.self = o })}
}

// needsBroken is a request bean depending on a bean that cannot be built.
type needsBroken struct{ dep Clock }

func (n *needsBroken) Dependencies() []Dependency {
	return []Dependency{Inject(func(c Clock) { n.dep = c })}
}

// Clock has no registered factory in most tests.
type Clock interface{ Now() int64 }

type fixedClock struct{}

func (fixedClock) Now() int64 { return 42 }

// mixReq is a request bean reaching itself through a context bean.
type mixReq struct{ ctx *mixCtx }

func (r *mixReq) Dependencies() []Dependency {
	return []Dependency{Inject(func(c *mixCtx) { r.ctx = c })}
}

type mixCtx struct{ req *mixReq }

func (*mixCtx) BeanScope() Scope { return Context }
func (c *mixCtx) Dependencies() []Dependency {
	return []Dependency{Inject(func(r *mixReq) { c.req = r })}
}

// mixSessReq is a request bean reaching itself through a session bean.
type mixSessReq struct{ sess *mixSess }

func (r *mixSessReq) Dependencies() []Dependency {
	return []Dependency{Inject(func(s *mixSess) { r.sess = s })}
}

type mixSess struct{ req *mixSessReq }

func (*mixSess) BeanScope() Scope { return Session }
func (s *mixSess) Dependencies() []Dependency {
	return []Dependency{Inject(func(r *mixSessReq) { s.req = r })}
}

// starter resolves another bean from its post-construct hook.
type starter struct {
	c     *Container
	other *leaf
}

func (*starter) BeanScope() Scope { return Context }
func (s *starter) PostConstruct() []Hook {
	return []Hook{func(ctx context.Context) error {
		l, err := Get[*leaf](ctx, s.c)
		s.other = l
		return err
	}}
}

// stopper resolves beans from its pre-destroy hook.
type stopper struct {
	c         *Container
	seen      *leaf
	freshErr  error
	shutdowns int
}

func (*stopper) BeanScope() Scope { return Context }
func (s *stopper) PreDestroy() []Hook {
	return []Hook{func(ctx context.Context) error {
		s.seen, _ = Get[*leaf](ctx, s.c)
		_, s.freshErr = Get[*contextBean](ctx, s.c)
		s.c.Shutdown(ctx)
		s.shutdowns++
		return nil
	}}
}
