// Package step drives computations that suspend at points of their own
// choosing.
//
// A [Driver] wraps a [Continuation] and enforces its life cycle:
//
//	NotStarted --Start--> Suspended <--Resume/Fail--> Suspended --> Finished
//
// Continuations come in two shapes. [Func] is a stackless state machine whose
// locals live in closures. [Routine] runs an ordinary function on its own
// goroutine and suspends it every time it calls [Yielder.Yield]; deferred
// calls in that function are its cleanup.
//
//	d := step.Go(func(y *step.Yielder[int, int]) (int, error) {
//		v, err := y.Yield(10)
//		if err != nil {
//			return 0, err
//		}
//		return 10 + v, nil
//	})
//	d.Start()   // Pending(10)
//	d.Resume(5) // Complete(15)
//
// Failures injected with [Driver.Fail] surface as the error returned by
// Yield. A computation that returns that error finishes the driver with a
// [PropagatedError]; one that handles it keeps going.
//
// [Producer] is the pull protocol shared by [Generator], [FuncProducer] and
// the adapters in this package.
package step
