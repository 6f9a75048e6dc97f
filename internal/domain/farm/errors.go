package farm

import "errors"

// Error message constants. Tests match on these with assert.ErrorIs or
// assert.Contains, presentation code maps the sentinels below to player text.
const (
	ErrMsgWrongCreatureKind = "wrong creature kind"
	ErrMsgWrongProductKind  = "wrong product kind"
	ErrMsgNoSpaceAvailable  = "no space available"
	ErrMsgMaxLevelReached   = "maximum level reached"
	ErrMsgNoSuchProduct     = "no such product in storage"
	ErrMsgInsufficientQty   = "insufficient quantity"
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgWrongAction       = "action not allowed"
	ErrMsgNoActionsLeft     = "no actions left today"
	ErrMsgInvalidQuantity   = "quantity must be positive"
	ErrMsgBuildingNotFound  = "building not found"
	ErrMsgCreatureNotFound  = "creature not found"
	ErrMsgUnknownKind       = "unknown kind"
)

// Domain errors. Wrap with fmt.Errorf("%w: %s", ErrXxx, details) when more
// context helps; callers compare with errors.Is.
var (
	// Type mismatches
	ErrWrongCreatureKind = errors.New(ErrMsgWrongCreatureKind)
	ErrWrongProductKind  = errors.New(ErrMsgWrongProductKind)

	// Capacity
	ErrNoSpaceAvailable = errors.New(ErrMsgNoSpaceAvailable)
	ErrMaxLevelReached  = errors.New(ErrMsgMaxLevelReached)

	// Storage
	ErrNoSuchProduct        = errors.New(ErrMsgNoSuchProduct)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQty)

	// Economy
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrWrongAction       = errors.New(ErrMsgWrongAction)
	ErrNoActionsLeft     = errors.New(ErrMsgNoActionsLeft)

	// Lookups and input
	ErrInvalidQuantity  = errors.New(ErrMsgInvalidQuantity)
	ErrBuildingNotFound = errors.New(ErrMsgBuildingNotFound)
	ErrCreatureNotFound = errors.New(ErrMsgCreatureNotFound)
	ErrUnknownKind      = errors.New(ErrMsgUnknownKind)
)
