// Package params parses request values shared by the v1 handlers.
package params

import (
	"fmt"
	"math"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// Amount parses a decimal string of whole currency units. Zero is allowed;
// callers that need a positive amount check for it themselves.
func Amount(field, value string) (int64, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, huma.Error400BadRequest(fmt.Sprintf("invalid %s", field), err)
	}
	if !d.IsInteger() {
		return 0, huma.Error400BadRequest(fmt.Sprintf("%s must be a whole number", field))
	}
	if d.IsNegative() {
		return 0, huma.Error400BadRequest(fmt.Sprintf("%s must not be negative", field))
	}
	if d.GreaterThan(maxAmount) {
		return 0, huma.Error400BadRequest(fmt.Sprintf("%s is too large", field))
	}
	return d.IntPart(), nil
}

// PositiveAmount is Amount with zero rejected.
func PositiveAmount(field, value string) (int64, error) {
	amount, err := Amount(field, value)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, huma.Error400BadRequest(fmt.Sprintf("%s must be positive", field))
	}
	return amount, nil
}

// FormatAmount renders a stored amount the way Amount accepts it.
func FormatAmount(amount int64) string {
	return decimal.NewFromInt(amount).String()
}

func ID(field, value string) (uuid.UUID, error) {
	id, err := uuid.FromString(value)
	if err != nil {
		return uuid.Nil, huma.Error400BadRequest(fmt.Sprintf("invalid %s", field), err)
	}
	return id, nil
}
