package farm

import "fmt"

// Storage holds at most one stack per product kind, in insertion order.
type Storage struct {
	stacks []ProductStack
}

// NewStorage seeds a storage with the given stacks, merging duplicates.
func NewStorage(stacks ...ProductStack) *Storage {
	s := &Storage{}
	for _, stack := range stacks {
		s.Deposit(stack)
	}
	return s
}

func (s *Storage) indexOf(kind ProductKind) int {
	for i, stack := range s.stacks {
		if stack.Kind == kind {
			return i
		}
	}
	return -1
}

// Deposit merges the stack into the existing one of the same kind or
// appends it. Empty stacks are ignored.
func (s *Storage) Deposit(stack ProductStack) {
	if stack.Empty() {
		return
	}
	if i := s.indexOf(stack.Kind); i >= 0 {
		s.stacks[i].Quantity += stack.Quantity
		return
	}
	s.stacks = append(s.stacks, stack)
}

// Withdraw takes quantity units of kind out of storage. The stack is
// removed when it reaches exactly zero.
func (s *Storage) Withdraw(kind ProductKind, quantity float64) (ProductStack, error) {
	i := s.indexOf(kind)
	if i < 0 {
		return ProductStack{}, fmt.Errorf("%w: %s", ErrNoSuchProduct, kind.Name())
	}
	if !(quantity > 0) {
		return ProductStack{}, fmt.Errorf("%w: %g", ErrInvalidQuantity, quantity)
	}
	if s.stacks[i].Quantity < quantity {
		return ProductStack{}, fmt.Errorf("%w: %s has %g, wanted %g", ErrInsufficientQuantity, kind.Name(), s.stacks[i].Quantity, quantity)
	}

	if s.stacks[i].Quantity == quantity {
		s.remove(i)
	} else {
		s.stacks[i].Quantity -= quantity
	}
	return NewStack(kind, quantity), nil
}

// WithdrawAll removes and returns the whole stack of kind.
func (s *Storage) WithdrawAll(kind ProductKind) (ProductStack, error) {
	i := s.indexOf(kind)
	if i < 0 {
		return ProductStack{}, fmt.Errorf("%w: %s", ErrNoSuchProduct, kind.Name())
	}
	stack := s.stacks[i]
	s.remove(i)
	return stack, nil
}

func (s *Storage) remove(i int) {
	s.stacks = append(s.stacks[:i], s.stacks[i+1:]...)
}

// Quantity returns the amount held for kind and whether a stack exists.
func (s *Storage) Quantity(kind ProductKind) (float64, bool) {
	if i := s.indexOf(kind); i >= 0 {
		return s.stacks[i].Quantity, true
	}
	return 0, false
}

// Stacks returns a copy of the stored stacks in insertion order.
func (s *Storage) Stacks() []ProductStack {
	out := make([]ProductStack, len(s.stacks))
	copy(out, s.stacks)
	return out
}

// Len is the number of distinct kinds held.
func (s *Storage) Len() int {
	return len(s.stacks)
}
