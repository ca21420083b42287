package step

import "fmt"

// Result is what a driver reports after every step.
// A pending result carries the value the computation yielded, a complete one
// carries the value it returned.
type Result[Y, R any] struct {
	Yielded  Y
	Returned R
	Done     bool
}

func Pending[Y, R any](value Y) Result[Y, R] {
	return Result[Y, R]{Yielded: value}
}

func Complete[Y, R any](value R) Result[Y, R] {
	return Result[Y, R]{Returned: value, Done: true}
}

func (r Result[Y, R]) String() string {
	if r.Done {
		return fmt.Sprintf("Complete(%v)", r.Returned)
	}
	return fmt.Sprintf("Pending(%v)", r.Yielded)
}

type State int

const (
	NotStarted State = iota
	Suspended
	Finished
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Suspended:
		return "suspended"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type SignalKind int

const (
	SignalStart SignalKind = iota
	SignalResume
	SignalFail
)

func (k SignalKind) String() string {
	switch k {
	case SignalStart:
		return "start"
	case SignalResume:
		return "resume"
	case SignalFail:
		return "fail"
	}
	return fmt.Sprintf("SignalKind(%d)", int(k))
}

// Signal is handed to a continuation on every step. Value is only meaningful
// for SignalResume, Err only for SignalFail.
type Signal[S any] struct {
	Kind  SignalKind
	Value S
	Err   error
}
