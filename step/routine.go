package step

import (
	"errors"
	"runtime"
	"runtime/debug"
)

// signalKill never reaches user code; it makes a parked routine unwind.
const signalKill SignalKind = -1

// Yielder is handed to a routine body. It is only valid on the body's own
// goroutine and only for the lifetime of the body.
type Yielder[Y, S any] struct {
	suspend   func(value Y) Signal[S]
	unwinding bool
}

// Yield suspends the body, handing value to the driver's caller. It returns
// the value passed to Resume, or the error passed to Fail. If the driver is
// terminated while suspended, Yield does not return: the body's deferred
// calls run and the goroutine exits. Yields issued by those deferred calls
// return ErrTerminated immediately.
func (y *Yielder[Y, S]) Yield(value Y) (S, error) {
	var zero S
	if y.unwinding {
		return zero, ErrTerminated
	}
	in := y.suspend(value)
	switch in.Kind {
	case SignalResume:
		return in.Value, nil
	case SignalFail:
		return zero, in.Err
	}
	y.unwinding = true
	runtime.Goexit()
	return zero, ErrTerminated
}

type exit[Y, R any] struct {
	res      Result[Y, R]
	err      error
	panicked *PanicError
}

type routine[Y, S, R any] struct {
	body    func(y *Yielder[Y, S]) (R, error)
	in      chan Signal[S]
	out     chan exit[Y, R]
	started bool
	done    bool
}

// Routine runs body on its own goroutine, handing control back and forth
// with the driver so that the two never run at the same time. Deferred calls
// in body are the cleanup that Driver.Terminate runs.
func Routine[Y, S, R any](body func(y *Yielder[Y, S]) (R, error)) Continuation[Y, S, R] {
	return &routine[Y, S, R]{
		body: body,
		in:   make(chan Signal[S]),
		out:  make(chan exit[Y, R]),
	}
}

func (r *routine[Y, S, R]) Advance(in Signal[S]) (Result[Y, R], error) {
	if r.done {
		return Result[Y, R]{}, ErrTerminated
	}
	if !r.started {
		r.started = true
		go r.run()
	} else {
		r.in <- in
	}
	return r.wait()
}

func (r *routine[Y, S, R]) wait() (Result[Y, R], error) {
	e := <-r.out
	if e.res.Done || e.err != nil || e.panicked != nil {
		r.done = true
	}
	if e.panicked != nil {
		panic(e.panicked)
	}
	return e.res, e.err
}

func (r *routine[Y, S, R]) Close() {
	if !r.started || r.done {
		r.done = true
		return
	}
	r.in <- Signal[S]{Kind: signalKill}
	e := <-r.out
	r.done = true
	if e.panicked != nil {
		panic(e.panicked)
	}
}

func (r *routine[Y, S, R]) run() {
	y := &Yielder[Y, S]{
		suspend: func(value Y) Signal[S] {
			r.out <- exit[Y, R]{res: Pending[Y, R](value)}
			return <-r.in
		},
	}

	var e exit[Y, R]
	returned := false
	defer func() {
		if !returned {
			if v := recover(); v != nil {
				e = exit[Y, R]{panicked: &PanicError{Value: v, Stack: debug.Stack()}}
			} else {
				// runtime.Goexit, either ours or the body's own.
				e = exit[Y, R]{err: ErrTerminated}
			}
		}
		r.out <- e
	}()

	value, err := r.body(y)
	if err != nil {
		e = exit[Y, R]{err: err}
	} else {
		e = exit[Y, R]{res: Complete[Y, R](value)}
	}
	returned = true
}

// Delegate runs inner to completion from inside a routine body, the way a
// generator delegates to another one. Every value inner yields is yielded by
// y, every resume value and injected failure y receives is forwarded to
// inner, and the value inner returns is returned. A failure inner does not
// recover from is returned as-is. If the outer routine is terminated, inner
// is terminated too.
func Delegate[Y, S, R any](y *Yielder[Y, S], inner *Driver[Y, S, R]) (R, error) {
	var zero R
	defer inner.Terminate()

	res, err := inner.Start()
	for err == nil && !res.Done {
		value, failure := y.Yield(res.Yielded)
		switch {
		case y.unwinding:
			return zero, failure
		case failure != nil:
			res, err = inner.Fail(failure)
		default:
			res, err = inner.Resume(value)
		}
	}
	if err != nil {
		var propagated *PropagatedError
		if errors.As(err, &propagated) {
			return zero, propagated.Err
		}
		return zero, err
	}
	return res.Returned, nil
}
