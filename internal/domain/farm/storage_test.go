package farm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_DepositMergesByKind(t *testing.T) {
	s := NewStorage(NewStack(Water, 10), NewStack(Egg, 2), NewStack(Water, 5))

	assert.Equal(t, []ProductStack{NewStack(Water, 15), NewStack(Egg, 2)}, s.Stacks())
	assert.Equal(t, 2, s.Len())
}

func TestStorage_DepositIgnoresEmptyStacks(t *testing.T) {
	s := NewStorage()
	s.Deposit(NewStack(Milk, 0))

	_, ok := s.Quantity(Milk)
	assert.False(t, ok)
}

func TestStorage_WithdrawPartial(t *testing.T) {
	s := NewStorage(NewStack(Water, 25))

	got, err := s.Withdraw(Water, 10)

	require.NoError(t, err)
	assert.Equal(t, NewStack(Water, 10), got)
	qty, ok := s.Quantity(Water)
	assert.True(t, ok)
	assert.Equal(t, 15.0, qty)
}

func TestStorage_WithdrawExactRemovesStack(t *testing.T) {
	s := NewStorage(NewStack(Egg, 4))

	_, err := s.Withdraw(Egg, 4)

	require.NoError(t, err)
	_, ok := s.Quantity(Egg)
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestStorage_WithdrawErrors(t *testing.T) {
	s := NewStorage(NewStack(Egg, 3))

	_, err := s.Withdraw(Milk, 1)
	assert.ErrorIs(t, err, ErrNoSuchProduct)

	_, err = s.Withdraw(Egg, 5)
	assert.ErrorIs(t, err, ErrInsufficientQuantity)

	_, err = s.Withdraw(Egg, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = s.Withdraw(Egg, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	s.Deposit(NewStack(Egg, math.NaN()))

	assert.Equal(t, []ProductStack{NewStack(Egg, 3)}, s.Stacks(), "failed withdrawals leave storage untouched")
}

func TestStorage_WithdrawAll(t *testing.T) {
	s := NewStorage(NewStack(AnimalFood, 20), NewStack(Water, 25))

	got, err := s.WithdrawAll(AnimalFood)

	require.NoError(t, err)
	assert.Equal(t, NewStack(AnimalFood, 20), got)
	assert.Equal(t, []ProductStack{NewStack(Water, 25)}, s.Stacks())

	_, err = s.WithdrawAll(AnimalFood)
	assert.ErrorIs(t, err, ErrNoSuchProduct)
}

func TestStorage_WithdrawDepositRoundTrip(t *testing.T) {
	for _, qty := range []float64{1, 12.5, 25} {
		s := NewStorage(NewStack(Water, 25), NewStack(Egg, 6))
		before := map[ProductKind]float64{}
		for _, st := range s.Stacks() {
			before[st.Kind] = st.Quantity
		}

		got, err := s.Withdraw(Water, qty)
		require.NoError(t, err)
		s.Deposit(got)

		after := map[ProductKind]float64{}
		for _, st := range s.Stacks() {
			after[st.Kind] = st.Quantity
		}
		assert.Equal(t, before, after, "qty %g", qty)
	}
}

func TestStorage_StacksIsACopy(t *testing.T) {
	s := NewStorage(NewStack(Water, 5))
	stacks := s.Stacks()
	stacks[0].Quantity = 100

	qty, _ := s.Quantity(Water)
	assert.Equal(t, 5.0, qty)
}
