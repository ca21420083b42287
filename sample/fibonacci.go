package sample

import "github.com/tmr232/resumable/step"

// FibonacciCounter returns a closure that produces the next Fibonacci number
// every time it is called: 1 1 2 3 5 8 ...
func FibonacciCounter() func() int {
	prev, value := 0, 0
	return func() int {
		if value == 0 {
			value++
			return value
		}
		prev, value = value, value+prev
		return value
	}
}

// FibonacciIterator is a hand-built producer. It never runs out.
type FibonacciIterator struct {
	prev  int
	value int
}

func NewFibonacciIterator() *FibonacciIterator {
	return &FibonacciIterator{}
}

func (it *FibonacciIterator) Next() bool {
	if it.value == 0 {
		it.value = 1
		return true
	}
	it.prev, it.value = it.value, it.value+it.prev
	return true
}

func (it *FibonacciIterator) Value() int {
	return it.value
}

func (it *FibonacciIterator) Error() error {
	return nil
}

// ManualFibonacci is the same sequence as a single advance closure.
func ManualFibonacci() *step.FuncProducer[int] {
	a := 1
	b := 1
	return &step.FuncProducer[int]{
		Advance: func() (bool, int, error) {
			value := a
			a, b = b, a+b
			return true, value, nil
		},
	}
}

// Fibonacci is the sequence as a generator. Once the generator has started,
// onCleanup runs exactly once, when it is closed. Closing it before the first
// Next runs nothing.
func Fibonacci(onCleanup func()) *step.Generator[int] {
	return step.NewGenerator(func(yield func(int) bool) error {
		if onCleanup != nil {
			defer onCleanup()
		}
		a, b := 1, 1
		for yield(a) {
			a, b = b, a+b
		}
		return nil
	})
}

// FibonacciUpTo yields the Fibonacci numbers not above limit and returns how
// many it yielded.
func FibonacciUpTo(limit int) *step.Driver[int, struct{}, int] {
	return step.Go(func(y *step.Yielder[int, struct{}]) (int, error) {
		count := 0
		for a, b := 1, 1; a <= limit; a, b = b, a+b {
			if _, err := y.Yield(a); err != nil {
				return count, err
			}
			count++
		}
		return count, nil
	})
}

// Delegating yields 0, then delegates to FibonacciUpTo(limit), then yields
// the number of values the delegate produced.
func Delegating(limit int) *step.Generator[int] {
	return step.FromDriver(step.Go(func(y *step.Yielder[int, struct{}]) (struct{}, error) {
		if _, err := y.Yield(0); err != nil {
			return struct{}{}, err
		}
		count, err := step.Delegate(y, FibonacciUpTo(limit))
		if err != nil {
			return struct{}{}, err
		}
		_, err = y.Yield(count)
		return struct{}{}, err
	}))
}
