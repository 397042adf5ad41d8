package history

import "slices"

// stack is a LIFO of commands whose oldest entries can be evicted
type stack struct {
	items []Command
}

func (s *stack) push(cmd Command) {
	s.items = append(s.items, cmd)
}

func (s *stack) pop() (Command, bool) {
	n := len(s.items)
	if n == 0 {
		return nil, false
	}
	cmd := s.items[n-1]
	s.items[n-1] = nil
	s.items = s.items[:n-1]
	return cmd, true
}

func (s *stack) peek() (Command, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}

func (s *stack) len() int {
	return len(s.items)
}

func (s *stack) clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// trim drops the oldest entries until at most capacity remain and returns
// how many were dropped
func (s *stack) trim(capacity int) int {
	n := len(s.items) - capacity
	if n <= 0 {
		return 0
	}
	s.items = slices.Delete(s.items, 0, n)
	return n
}

// descriptions lists the descriptions from the top of the stack down
func (s *stack) descriptions() []string {
	out := make([]string, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i].Description())
	}
	return out
}
