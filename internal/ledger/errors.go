package ledger

import "errors"

var (
	// ErrInsufficientBalance is returned when an operation would drive a club's
	// current budget below zero. Nothing is written.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrNotFound is returned when a referenced club or transaction does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflictingWrite is returned when the club balance changed between the
	// read and the write. The operation must be retried from a fresh read.
	ErrConflictingWrite = errors.New("conflicting write")

	// ErrInvalidAmount is returned for non-positive amounts and for amounts
	// whose effect does not fit in the balance.
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("transaction type must be INCOME or EXPENSE")
)
