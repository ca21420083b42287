package step

// Producer is anything that hands out values on demand.
//
//	for p.Next() {
//		use(p.Value())
//	}
//	if p.Error() != nil { ... }
type Producer[T any] interface {
	Next() bool
	Value() T
	Error() error
}

// FuncProducer is a producer built from a single advance closure.
type FuncProducer[T any] struct {
	Advance func() (hasValue bool, value T, err error)
	value   T
	err     error
	done    bool
}

func (p *FuncProducer[T]) Next() bool {
	if p.done {
		return false
	}
	hasValue, value, err := p.Advance()
	p.err = err
	if !hasValue || err != nil {
		p.done = true
		return false
	}
	p.value = value
	return true
}

func (p *FuncProducer[T]) Value() T {
	return p.value
}

func (p *FuncProducer[T]) Error() error {
	return p.err
}

// Generator is a producer backed by a driver that needs no resume values.
type Generator[T any] struct {
	d     *Driver[T, struct{}, struct{}]
	value T
	err   error
}

// NewGenerator turns fn into a generator. Each call to yield suspends fn
// until the next call to Next. Closing the generator unwinds fn, running its
// deferred calls; yield reports false when called from those.
func NewGenerator[T any](fn func(yield func(T) bool) error, opts ...Option) *Generator[T] {
	d := Go(func(y *Yielder[T, struct{}]) (struct{}, error) {
		err := fn(func(value T) bool {
			_, err := y.Yield(value)
			return err == nil
		})
		return struct{}{}, err
	}, opts...)
	return &Generator[T]{d: d}
}

// FromDriver exposes d as a generator. The value d returns is discarded.
func FromDriver[T any](d *Driver[T, struct{}, struct{}]) *Generator[T] {
	return &Generator[T]{d: d}
}

func (g *Generator[T]) Next() bool {
	var (
		res Result[T, struct{}]
		err error
	)
	switch g.d.State() {
	case NotStarted:
		res, err = g.d.Start()
	case Suspended:
		res, err = g.d.Resume(struct{}{})
	default:
		return false
	}
	if err != nil {
		g.err = err
		return false
	}
	if res.Done {
		return false
	}
	g.value = res.Yielded
	return true
}

func (g *Generator[T]) Value() T {
	return g.value
}

func (g *Generator[T]) Error() error {
	return g.err
}

// Close stops the generator early, running its deferred cleanup.
func (g *Generator[T]) Close() error {
	return g.d.Terminate()
}

func (g *Generator[T]) State() State {
	return g.d.State()
}
