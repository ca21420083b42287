package sample

import (
	"io"

	"github.com/tmr232/resumable/step"
)

// Range yields 0 through stop-1.
func Range(stop int) *step.Generator[int] {
	return step.NewGenerator(func(yield func(int) bool) error {
		for i := 0; i < stop; i++ {
			if !yield(i) {
				return nil
			}
		}
		return nil
	})
}

// UpAndDown counts from 0 up to stop and back down to 0 again.
func UpAndDown(stop int) *step.Generator[int] {
	return step.NewGenerator(func(yield func(int) bool) error {
		for i := 0; i < stop; i++ {
			if !yield(i) {
				return nil
			}
		}
		for i := stop; i >= 0; i-- {
			if !yield(i) {
				return nil
			}
		}
		return nil
	})
}

func MapValues[K comparable, V any](m map[K]V) *step.Generator[V] {
	return step.NewGenerator(func(yield func(V) bool) error {
		for _, v := range m {
			if !yield(v) {
				return nil
			}
		}
		return nil
	})
}

// filter passes on the values of source for which keep returns true. keep
// sees the values in order and may carry state between calls.
func filter[T any](source step.Producer[T], keep func(T) bool) *step.Generator[T] {
	return step.NewGenerator(func(yield func(T) bool) error {
		if closer, ok := source.(io.Closer); ok {
			defer closer.Close()
		}
		for source.Next() {
			v := source.Value()
			if keep(v) && !yield(v) {
				return nil
			}
		}
		return source.Error()
	})
}

func Filter[T any](source step.Producer[T], predicate func(T) bool) *step.Generator[T] {
	return filter(source, predicate)
}

func DropN[T any](source step.Producer[T], n int) *step.Generator[T] {
	return filter(source, func(T) bool {
		if n > 0 {
			n--
			return false
		}
		return true
	})
}

func DropWhile[T any](source step.Producer[T], predicate func(T) bool) *step.Generator[T] {
	dropping := true
	return filter(source, func(v T) bool {
		dropping = dropping && predicate(v)
		return !dropping
	})
}

func TakeWhile[T any](source step.Producer[T], predicate func(T) bool) *step.Generator[T] {
	return step.NewGenerator(func(yield func(T) bool) error {
		if closer, ok := source.(io.Closer); ok {
			defer closer.Close()
		}
		for source.Next() {
			v := source.Value()
			if !predicate(v) || !yield(v) {
				return nil
			}
		}
		return source.Error()
	})
}
