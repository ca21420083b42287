package step

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

var (
	ErrInvalidState = xerrors.New("invalid state")
	ErrPropagated   = xerrors.New("propagated failure")
	ErrTerminated   = xerrors.New("computation terminated")
)

func invalidState(op string, state State) error {
	return xerrors.Errorf("%s: driver is %s: %w", op, state, ErrInvalidState)
}

// PropagatedError is returned by Driver.Fail when the computation did not
// recover from the injected failure. Err is the error the computation
// surfaced, usually the injected one.
type PropagatedError struct {
	Err error
}

func (e *PropagatedError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPropagated, e.Err)
}

func (e *PropagatedError) Unwrap() error {
	return e.Err
}

func (e *PropagatedError) Is(target error) bool {
	return target == ErrPropagated
}

// PanicError is raised on the caller's goroutine when a computation panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "step: computation panicked: %v", e.Value)
	if e.Stack != nil {
		b.WriteString("\n\n")
		b.Write(e.Stack)
	}
	return b.String()
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
