package utils

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/panics"
)

// Group runs goroutines sharing one context. Unlike x/sync/errgroup, every function receives the
// group's context and there is no limit on how many run at once. The first failure, returned
// error or panic, cancels the context for the others and is what Wait reports. It's not safe to
// use the zero value of Group; use NewGroup.
type Group struct {
	ctx         context.Context
	cancelCause context.CancelCauseFunc
	wg          sync.WaitGroup

	errOnce sync.Once
	err     error
}

// NewGroup returns a group whose context derives from ctx, and the function cancelling it.
func NewGroup(ctx context.Context) (*Group, context.CancelCauseFunc) {
	ctx, cancelCause := context.WithCancelCause(ctx)
	return &Group{ctx: ctx, cancelCause: cancelCause}, cancelCause
}

// Go runs f in a new goroutine.
func (g *Group) Go(f func(ctx context.Context) error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()

		var err error
		var pc panics.Catcher
		pc.Try(func() { err = f(g.ctx) })
		if r := pc.Recovered(); r != nil {
			err = r.AsError()
		}
		if err != nil {
			g.errOnce.Do(func() {
				g.err = err
			})
			g.cancelCause(err)
		}
	}()
}

// GoN runs n copies of f, numbering them from 0.
func (g *Group) GoN(n int, f func(ctx context.Context, worker int) error) {
	for i := 0; i < n; i++ {
		worker := i
		g.Go(func(ctx context.Context) error {
			return f(ctx, worker)
		})
	}
}

// Wait blocks until every function started with Go has returned, then returns the first failure
// if any.
func (g *Group) Wait() error {
	g.wg.Wait()
	return g.err
}

// Context returns the context handed to every function.
func (g *Group) Context() context.Context {
	return g.ctx
}
