// Package httperr turns service errors into Huma status errors.
package httperr

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/ocr"
	"github.com/carson-networks/club-budget-server/internal/operator"
)

// FromError maps err to an HTTP error carrying msg. Errors the client cannot
// act on become a 500.
func FromError(err error, msg string) error {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return huma.Error404NotFound(msg, err)
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrInvalidType):
		return huma.Error400BadRequest(msg, err)
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return huma.Error422UnprocessableEntity(msg, err)
	case errors.Is(err, ledger.ErrConflictingWrite):
		return huma.Error409Conflict(msg, err)
	case errors.Is(err, ocr.ErrUnavailable), errors.Is(err, operator.ErrStopped):
		return huma.Error503ServiceUnavailable(msg, err)
	case errors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout(msg, err)
	default:
		return huma.Error500InternalServerError(msg, err)
	}
}
