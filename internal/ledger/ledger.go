// Package ledger holds the balance arithmetic for a club's running budget.
//
// Every function takes the current balance explicitly and returns the balance
// to write back, so callers can pair the result with a compare-and-swap on the
// club row.
package ledger

import "fmt"

// Type is the direction of a transaction.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// Valid reports whether t is one of the known transaction types.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// ParseType converts an API or database value to a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

// Effect is the signed contribution of a transaction to the balance.
func Effect(t Type, amount int64) int64 {
	if t == TypeIncome {
		return amount
	}
	return -amount
}

// addChecked returns a+b, or false when the sum does not fit in an int64.
func addChecked(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

func overflow(balance, change int64) error {
	return fmt.Errorf("%w: balance %d cannot absorb %d", ErrInvalidAmount, balance, change)
}

func validate(t Type, amount int64) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, string(t))
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Record returns the balance after applying a new transaction. Only expenses
// are checked against the lower bound; income is always accepted.
func Record(balance int64, t Type, amount int64) (int64, error) {
	if err := validate(t, amount); err != nil {
		return 0, err
	}

	newBalance, ok := addChecked(balance, Effect(t, amount))
	if !ok {
		return 0, overflow(balance, Effect(t, amount))
	}
	if t == TypeExpense && newBalance < 0 {
		return 0, fmt.Errorf("%w: balance %d, expense %d", ErrInsufficientBalance, balance, amount)
	}
	return newBalance, nil
}

// Update returns the balance after replacing an existing transaction's type
// and amount. The edit is rejected when the resulting balance is negative,
// whatever the direction of the change.
func Update(balance int64, oldType Type, oldAmount int64, newType Type, newAmount int64) (int64, error) {
	if err := validate(newType, newAmount); err != nil {
		return 0, err
	}

	// Effects are within ±MaxInt64, so negating one is safe.
	diff, ok := addChecked(Effect(newType, newAmount), -Effect(oldType, oldAmount))
	if !ok {
		return 0, overflow(balance, Effect(newType, newAmount))
	}
	newBalance, ok := addChecked(balance, diff)
	if !ok {
		return 0, overflow(balance, diff)
	}
	if newBalance < 0 {
		return 0, fmt.Errorf("%w: balance %d, change %d", ErrInsufficientBalance, balance, diff)
	}
	return newBalance, nil
}

// Reverse returns the balance after removing a transaction. There is no
// lower-bound check: reversing an income may leave the balance negative.
func Reverse(balance int64, t Type, amount int64) (int64, error) {
	newBalance, ok := addChecked(balance, -Effect(t, amount))
	if !ok {
		return 0, overflow(balance, -Effect(t, amount))
	}
	return newBalance, nil
}

// AdjustTotal returns the current balance after the club's allotment moves
// from oldTotal to newTotal, keeping current = total + net of transactions.
func AdjustTotal(current, oldTotal, newTotal int64) (int64, error) {
	if newTotal < 0 {
		return 0, ErrInvalidAmount
	}

	// Both totals are non-negative, so their difference cannot overflow.
	newCurrent, ok := addChecked(current, newTotal-oldTotal)
	if !ok {
		return 0, overflow(current, newTotal-oldTotal)
	}
	if newCurrent < 0 {
		return 0, fmt.Errorf("%w: balance %d, total change %d", ErrInsufficientBalance, current, newTotal-oldTotal)
	}
	return newCurrent, nil
}
