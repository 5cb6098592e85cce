package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/handlers/httperr"
	"github.com/carson-networks/club-budget-server/internal/handlers/params"
	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/logging"
	"github.com/carson-networks/club-budget-server/internal/service"
)

// HistoryCursor is the opaque-to-clients paging state echoed back between
// pages of a club's history.
type HistoryCursor struct {
	Position        int    `json:"position" minimum:"0" doc:"Offset of the next page"`
	Limit           int    `json:"limit" minimum:"1" maximum:"100" doc:"Page size"`
	MaxCreationTime string `json:"maxCreationTime" format:"date-time" doc:"Newest createdAt included, fixed by the first page"`
	Type            string `json:"type,omitempty" enum:"INCOME,EXPENSE" doc:"Type filter of the first page"`
}

type ListTransactionsBody struct {
	Type   string         `json:"type,omitempty" enum:"INCOME,EXPENSE" doc:"Only list incomes or expenses; ignored when a cursor is given"`
	Cursor *HistoryCursor `json:"cursor,omitempty" doc:"nextCursor of the previous page"`
}

type ListTransactionsInput struct {
	ClubID string `path:"clubID" format:"uuid" doc:"Club UUID"`
	Body   ListTransactionsBody
}

type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Newest first"`
	NextCursor   *HistoryCursor `json:"nextCursor,omitempty" doc:"Absent on the last page"`
}

type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

type transactionLister interface {
	ListTransactions(ctx context.Context, clubID uuid.UUID, txType ledger.Type, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles POST /v1/club/{clubID}/transaction/list.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/club/{clubID}/transaction/list",
		Summary:     "List transactions",
		Description: "Pages through a club's transaction history, newest first, optionally only incomes or expenses.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// optionalType parses an enum value that may be empty.
func optionalType(raw string) (ledger.Type, error) {
	if raw == "" {
		return "", nil
	}
	txType, err := ledger.ParseType(raw)
	if err != nil {
		return "", httperr.FromError(err, "invalid type")
	}
	return txType, nil
}

// cursorFromAPI converts a client cursor. A nil cursor means the first page.
func cursorFromAPI(c *HistoryCursor) (*service.TransactionCursor, error) {
	if c == nil {
		return nil, nil
	}
	if c.Position < 0 {
		return nil, huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
	}

	upperBound, err := time.Parse(time.RFC3339Nano, c.MaxCreationTime)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid cursor maxCreationTime", err)
	}
	txType, err := optionalType(c.Type)
	if err != nil {
		return nil, err
	}

	return &service.TransactionCursor{
		Position:        c.Position,
		Limit:           c.Limit,
		MaxCreationTime: upperBound,
		Type:            txType,
	}, nil
}

func cursorToAPI(c *service.TransactionCursor) *HistoryCursor {
	if c == nil {
		return nil
	}
	return &HistoryCursor{
		Position:        c.Position,
		Limit:           c.Limit,
		MaxCreationTime: c.MaxCreationTime.Format(time.RFC3339Nano),
		Type:            string(c.Type),
	}
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	clubID, err := params.ID("clubID", input.ClubID)
	if err != nil {
		return nil, err
	}
	txType, err := optionalType(input.Body.Type)
	if err != nil {
		return nil, err
	}
	cursor, err := cursorFromAPI(input.Body.Cursor)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	stopTimer := func() {}
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	page, next, err := h.TransactionService.ListTransactions(ctx, clubID, txType, cursor)
	stopTimer()
	if err != nil {
		return nil, httperr.FromError(err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(page))
	}

	out := &ListTransactionsOutput{Body: ListTransactionsResponseBody{
		Transactions: make([]Transaction, 0, len(page)),
		NextCursor:   cursorToAPI(next),
	}}
	for i := range page {
		out.Body.Transactions = append(out.Body.Transactions, toAPI(&page[i]))
	}
	return out, nil
}
