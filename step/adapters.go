package step

import "iter"

type sliceProducer[T any] struct {
	slice []T
	index int
}

func Slice[T any](slice []T) Producer[T] {
	return &sliceProducer[T]{slice: slice, index: -1}
}

func (s *sliceProducer[T]) Next() bool {
	if s.index < len(s.slice) {
		s.index++
	}
	return s.index < len(s.slice)
}

func (s *sliceProducer[T]) Value() T {
	return s.slice[s.index]
}

func (s *sliceProducer[T]) Error() error {
	return nil
}

type takeProducer[T any] struct {
	source Producer[T]
	left   int
}

// Take stops after n values of source.
func Take[T any](source Producer[T], n int) Producer[T] {
	return &takeProducer[T]{source: source, left: n}
}

func (t *takeProducer[T]) Next() bool {
	if t.left <= 0 {
		return false
	}
	t.left--
	return t.source.Next()
}

func (t *takeProducer[T]) Value() T {
	return t.source.Value()
}

func (t *takeProducer[T]) Error() error {
	return t.source.Error()
}

// Collect drains p. On error it returns what was collected so far.
func Collect[T any](p Producer[T]) (slice []T, err error) {
	for p.Next() {
		slice = append(slice, p.Value())
	}
	return slice, p.Error()
}

// All lets p be ranged over. Errors are left on p.
func All[T any](p Producer[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for p.Next() {
			if !yield(p.Value()) {
				return
			}
		}
	}
}
