package models

import (
	"errors"
	"fmt"
)

// ErrInsufficientInventory signals a SELL whose quantity exceeds the tracked
// inventory for its symbol. The originating system silently ignored such
// sells, which corrupts downstream P&L without signal; the engine rejects
// them instead.
var ErrInsufficientInventory = errors.New("insufficient inventory")

// InsufficientInventoryError carries the oversell details for the client.
type InsufficientInventoryError struct {
	Symbol    string
	Requested float64
	Available float64
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for %s: sell of %g exceeds held quantity %g", e.Symbol, e.Requested, e.Available)
}

func (e *InsufficientInventoryError) Unwrap() error {
	return ErrInsufficientInventory
}
