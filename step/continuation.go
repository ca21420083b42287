package step

// Continuation is a suspended computation that the driver advances one step
// at a time. Advance runs until the next suspension point or completion.
// Close runs the teardown tied to the current suspension point; the driver
// calls it at most once, after the continuation has been started.
type Continuation[Y, S, R any] interface {
	Advance(in Signal[S]) (Result[Y, R], error)
	Close()
}

// Func is a stackless continuation: the caller keeps whatever locals it needs
// in the closures and switches on them in Advance.
type Func[Y, S, R any] struct {
	Advance func(in Signal[S]) (Result[Y, R], error)
	Cleanup func()
}

type funcContinuation[Y, S, R any] struct {
	f      *Func[Y, S, R]
	closed bool
}

func (c *funcContinuation[Y, S, R]) Advance(in Signal[S]) (Result[Y, R], error) {
	return c.f.Advance(in)
}

func (c *funcContinuation[Y, S, R]) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.f.Cleanup != nil {
		c.f.Cleanup()
	}
}

// Continuation wraps f so it can be handed to New.
func (f *Func[Y, S, R]) Continuation() Continuation[Y, S, R] {
	return &funcContinuation[Y, S, R]{f: f}
}
