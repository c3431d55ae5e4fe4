package pool

// Factory creates and maintains the objects handed out by a Bounded pool.
type Factory[T any] interface {
	// Make builds a brand new object. An error is returned to the caller of Acquire unchanged.
	Make() (T, error)

	// Destroy is called when an object is permanently discarded after failing validation.
	Destroy(obj T)

	// Validate reports whether obj may still be handed out.
	Validate(obj T) bool

	// Passivate resets obj to a reusable state right before it re-enters the idle queue.
	Passivate(obj T)
}

// Activator is an optional Factory extension. When the factory implements it, Activate runs on
// every object just before Acquire hands it out.
type Activator[T any] interface {
	Activate(obj T)
}

// Funcs adapts plain functions to the Factory and Activator interfaces. MakeFn is required;
// every other nil function falls back to the default behavior: Destroy, Passivate and Activate
// do nothing and Validate accepts everything.
type Funcs[T any] struct {
	MakeFn      func() (T, error)
	DestroyFn   func(T)
	ValidateFn  func(T) bool
	PassivateFn func(T)
	ActivateFn  func(T)
}

func (f Funcs[T]) Make() (T, error) {
	return f.MakeFn()
}

func (f Funcs[T]) Destroy(obj T) {
	if f.DestroyFn != nil {
		f.DestroyFn(obj)
	}
}

func (f Funcs[T]) Validate(obj T) bool {
	if f.ValidateFn == nil {
		return true
	}
	return f.ValidateFn(obj)
}

func (f Funcs[T]) Passivate(obj T) {
	if f.PassivateFn != nil {
		f.PassivateFn(obj)
	}
}

func (f Funcs[T]) Activate(obj T) {
	if f.ActivateFn != nil {
		f.ActivateFn(obj)
	}
}

var (
	_ Factory[any]   = Funcs[any]{}
	_ Activator[any] = Funcs[any]{}
)

// NewFuncs returns a Funcs whose Make never fails and whose Passivate is passivate.
func NewFuncs[T any](newFn func() T, passivate func(T)) Funcs[T] {
	return Funcs[T]{
		MakeFn: func() (T, error) {
			return newFn(), nil
		},
		PassivateFn: passivate,
	}
}
