package interpreter

type Stack[T any] []T

func (s *Stack[T]) Push(v T) {
	*s = append(*s, v)
}

func (s *Stack[T]) At(i int) *T {
	return &(*s)[i]
}

// Truncate drops everything above the first n elements.
func (s *Stack[T]) Truncate(n int) {
	clear((*s)[n:])
	*s = (*s)[:n]
}

func (s *Stack[T]) Len() int {
	return len(*s)
}
