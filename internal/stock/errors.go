package stock

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest indicates a malformed input shape or a non-positive quantity where a positive one is required.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInsufficientStock indicates a transfer would drive a catalog quantity negative.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrNotFound indicates a referenced vehicle or item is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuantity indicates a negative value supplied to an absolute-set operation.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrIncompleteChecklist indicates a checklist does not cover the reference tool list exactly.
	ErrIncompleteChecklist = errors.New("incomplete checklist")
)

// ShortageError names the catalog item that cannot satisfy a transfer.
type ShortageError struct {
	ItemID    string
	Requested int
	Available int
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("%s: item %s requested %d, available %d", ErrInsufficientStock, e.ItemID, e.Requested, e.Available)
}

// Is lets errors.Is match ErrInsufficientStock.
func (e *ShortageError) Is(target error) bool {
	return target == ErrInsufficientStock
}
