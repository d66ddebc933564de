package util

// Stack is a last in, first out list, such as the screens to go back to.
type Stack[T any] []T

func (s *Stack[T]) Push(v T) {
	*s = append(*s, v)
}

// Peek returns the top without removing it. ok is false for an empty stack.
func (s Stack[T]) Peek() (v T, ok bool) {
	if len(s) == 0 {
		return v, false
	}
	return s[len(s)-1], true
}

func (s *Stack[T]) Pop() (T, bool) {
	v, ok := s.Peek()
	if ok {
		*s = (*s)[:len(*s)-1]
	}
	return v, ok
}

func (s Stack[T]) Len() int {
	return len(s)
}

func (s *Stack[T]) Clear() {
	*s = (*s)[:0]
}
