package step

import (
	"errors"
	"reflect"
	"testing"
)

func Range(stop int) *Generator[int] {
	return NewGenerator(func(yield func(int) bool) error {
		for i := 0; i < stop; i++ {
			if !yield(i) {
				return nil
			}
		}
		return nil
	})
}

type SomeGenError struct{}

func (SomeGenError) Error() string {
	return "some generator error"
}

func TestSlice(t *testing.T) {
	tests := []struct {
		name string
		want []int
	}{
		{"nil", nil},
		{"single", []int{1}},
		{"multiple", []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Collect(Slice(tt.want))
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSliceStaysExhausted(t *testing.T) {
	p := Slice([]int{1})
	for p.Next() {
	}
	if p.Next() {
		t.Error("An exhausted slice should stay exhausted.")
	}
}

func TestTake(t *testing.T) {
	type Args struct {
		stop int
		n    int
	}
	tests := []struct {
		name string
		args Args
		want []int
	}{
		{"empty", Args{0, 0}, nil},
		{"1 item", Args{4, 1}, []int{0}},
		{"2 items", Args{4, 2}, []int{0, 1}},
		{"all items", Args{4, 4}, []int{0, 1, 2, 3}},
		{"more than len", Args{4, 5}, []int{0, 1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := Range(tt.args.stop)
			defer gen.Close()
			got, err := Collect(Take[int](gen, tt.args.n))
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGeneratorEmpty(t *testing.T) {
	empty := NewGenerator(func(yield func(string) bool) error {
		return nil
	})
	for empty.Next() {
		t.Error("The empty generator should have no values.")
	}
	if empty.Error() != nil {
		t.Error("The empty generator should have no errors.")
	}
	if empty.State() != Finished {
		t.Errorf("state = %v, want %v", empty.State(), Finished)
	}
}

func TestGeneratorEmptyWithError(t *testing.T) {
	emptyWithError := NewGenerator(func(yield func(int) bool) error {
		return SomeGenError{}
	})
	for emptyWithError.Next() {
		t.Error("The empty generator should have no values.")
	}
	if !errors.Is(emptyWithError.Error(), SomeGenError{}) {
		t.Errorf("got = %v, want %v", emptyWithError.Error(), SomeGenError{})
	}
}

func TestGeneratorClose(t *testing.T) {
	cleanups := 0
	gen := NewGenerator(func(yield func(int) bool) error {
		defer func() { cleanups++ }()
		for i := 0; ; i++ {
			if !yield(i) {
				return nil
			}
		}
	})

	var got []int
	for gen.Next() {
		got = append(got, gen.Value())
		if gen.Value() == 2 {
			if err := gen.Close(); err != nil {
				t.Fatal(err)
			}
		}
	}

	if want := []int{0, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("got = %v, want %v", got, want)
	}
	if cleanups != 1 {
		t.Errorf("cleanups = %d, want 1", cleanups)
	}
	if gen.Error() != nil {
		t.Errorf("unexpected error: %v", gen.Error())
	}
}

func TestFuncProducer(t *testing.T) {
	a, b := 1, 1
	fib := &FuncProducer[int]{
		Advance: func() (bool, int, error) {
			value := a
			a, b = b, a+b
			return true, value, nil
		},
	}

	got, err := Collect(Take[int](fib, 7))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 1, 2, 3, 5, 8, 13}; !reflect.DeepEqual(got, want) {
		t.Errorf("Invalid sequence. Want %v but got %v.", want, got)
	}
}

func TestFuncProducerError(t *testing.T) {
	calls := 0
	p := &FuncProducer[int]{
		Advance: func() (bool, int, error) {
			calls++
			if calls > 2 {
				return false, 0, SomeGenError{}
			}
			return true, calls, nil
		},
	}

	got, err := Collect[int](p)
	if want := []int{1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("got = %v, want %v", got, want)
	}
	if !errors.Is(err, SomeGenError{}) {
		t.Errorf("got = %v, want %v", err, SomeGenError{})
	}
	if p.Next() || calls != 3 {
		t.Error("A failed producer should not advance again.")
	}
}

func TestAll(t *testing.T) {
	gen := Range(10)
	defer gen.Close()

	var got []int
	for v := range All[int](gen) {
		if v == 5 {
			break
		}
		got = append(got, v)
	}
	if want := []int{0, 1, 2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("got = %v, want %v", got, want)
	}
}

func TestFromDriver(t *testing.T) {
	d := Go(func(y *Yielder[string, struct{}]) (struct{}, error) {
		for _, s := range []string{"a", "b"} {
			if _, err := y.Yield(s); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	got, err := Collect[string](FromDriver(d))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got = %v, want %v", got, want)
	}
}
