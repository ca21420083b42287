package step

import (
	"runtime/debug"
	"sync/atomic"

	"golang.org/x/exp/slog"
	"golang.org/x/xerrors"
)

// Driver advances a suspended computation one step at a time.
//
// Start runs the computation to its first suspension point. Resume and Fail
// continue it from there, either with a value or with an error surfacing at
// the suspension point. Terminate finishes it early, running its cleanup.
// Every operation invoked in a state that forbids it returns an error
// wrapping ErrInvalidState, including calls made from inside the computation
// while it is running.
//
// A Driver must not be used from several goroutines at once.
type Driver[Y, S, R any] struct {
	cont  Continuation[Y, S, R]
	state State
	busy  atomic.Bool

	returned  R
	completed bool
	err       error

	log *slog.Logger
}

type Option func(*options)

type options struct {
	name   string
	logger *slog.Logger
}

// WithLogger sets the logger step transitions are reported to, at debug
// level. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithName labels the driver in log output.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func New[Y, S, R any](cont Continuation[Y, S, R], opts ...Option) *Driver[Y, S, R] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	log := o.logger
	if o.name != "" {
		log = log.With("driver", o.name)
	}
	return &Driver[Y, S, R]{
		cont:  cont,
		state: NotStarted,
		log:   log,
	}
}

// Go is New(Routine(body), opts...).
func Go[Y, S, R any](body func(y *Yielder[Y, S]) (R, error), opts ...Option) *Driver[Y, S, R] {
	return New(Routine(body), opts...)
}

func (d *Driver[Y, S, R]) State() State {
	return d.state
}

// Completed returns the value the computation returned, if it ran to
// completion.
func (d *Driver[Y, S, R]) Completed() (R, bool) {
	return d.returned, d.completed
}

// Err returns the error that finished the driver: the computation's own
// error, a *PropagatedError, a *PanicError, or ErrTerminated after Terminate.
func (d *Driver[Y, S, R]) Err() error {
	return d.err
}

// Start may be called once. A second call fails with ErrInvalidState.
func (d *Driver[Y, S, R]) Start() (Result[Y, R], error) {
	if err := d.enter("start", NotStarted); err != nil {
		return Result[Y, R]{}, err
	}
	defer d.busy.Store(false)
	return d.step("start", Signal[S]{Kind: SignalStart})
}

func (d *Driver[Y, S, R]) Resume(value S) (Result[Y, R], error) {
	if err := d.enter("resume", Suspended); err != nil {
		return Result[Y, R]{}, err
	}
	defer d.busy.Store(false)
	return d.step("resume", Signal[S]{Kind: SignalResume, Value: value})
}

// Fail injects failure at the suspension point. If the computation recovers, the
// result is whatever it produced next. Otherwise the driver finishes and the
// returned error is a *PropagatedError wrapping what the computation
// surfaced.
func (d *Driver[Y, S, R]) Fail(failure error) (Result[Y, R], error) {
	if err := d.enter("fail", Suspended); err != nil {
		return Result[Y, R]{}, err
	}
	defer d.busy.Store(false)
	return d.step("fail", Signal[S]{Kind: SignalFail, Err: failure})
}

// Terminate finishes the driver. If the computation is suspended, its
// cleanup runs before Terminate returns. Calling Terminate on a finished
// driver does nothing; calling it before Start finishes the driver without
// running the computation at all.
func (d *Driver[Y, S, R]) Terminate() error {
	if !d.busy.CompareAndSwap(false, true) {
		return xerrors.Errorf("terminate: driver is running: %w", ErrInvalidState)
	}
	defer d.busy.Store(false)

	from := d.state
	switch from {
	case Finished:
		return nil
	case NotStarted:
		d.state = Finished
		d.err = ErrTerminated
	case Suspended:
		d.state = Finished
		d.err = ErrTerminated
		d.cont.Close()
	}
	d.log.Debug("step", "op", "terminate", "from", from.String(), "to", d.state.String())
	return nil
}

func (d *Driver[Y, S, R]) enter(op string, want State) error {
	if !d.busy.CompareAndSwap(false, true) {
		return xerrors.Errorf("%s: driver is running: %w", op, ErrInvalidState)
	}
	if d.state != want {
		d.busy.Store(false)
		return invalidState(op, d.state)
	}
	return nil
}

func (d *Driver[Y, S, R]) step(op string, in Signal[S]) (Result[Y, R], error) {
	from := d.state
	advanced := false
	defer func() {
		if advanced {
			return
		}
		// The computation panicked or called runtime.Goexit. Either way it
		// keeps unwinding to the caller once the driver is finished.
		v := recover()
		switch pv := v.(type) {
		case nil:
			d.err = ErrTerminated
		case *PanicError:
			d.err = pv
		default:
			d.err = &PanicError{Value: v, Stack: debug.Stack()}
		}
		d.state = Finished
		d.log.Debug("step", "op", op, "from", from.String(), "to", d.state.String(), "err", d.err)
		d.cont.Close()
		if v != nil {
			panic(v)
		}
	}()

	res, err := d.cont.Advance(in)
	advanced = true

	switch {
	case err != nil:
		if in.Kind == SignalFail {
			err = &PropagatedError{Err: err}
		}
		res = Result[Y, R]{}
		d.finish(err)
	case res.Done:
		d.returned, d.completed = res.Returned, true
		d.finish(nil)
	default:
		d.state = Suspended
	}

	if err != nil {
		d.log.Debug("step", "op", op, "from", from.String(), "to", d.state.String(), "err", err)
	} else {
		d.log.Debug("step", "op", op, "from", from.String(), "to", d.state.String(), "result", res.String())
	}
	return res, err
}

func (d *Driver[Y, S, R]) finish(err error) {
	d.state = Finished
	d.err = err
	d.cont.Close()
}
