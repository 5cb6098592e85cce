package service

import (
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/club-budget-server/internal/events"
	"github.com/carson-networks/club-budget-server/internal/imagestore"
	"github.com/carson-networks/club-budget-server/internal/ocr"
	"github.com/carson-networks/club-budget-server/internal/operator"
	"github.com/carson-networks/club-budget-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Club        *ClubService
	Transaction *TransactionService
	Ledger      *LedgerService
	Receipt     *ReceiptService
}

// Dependencies are the collaborators the services are built from. Images
// may be nil when receipt uploads are disabled.
type Dependencies struct {
	Reader     *storage.Reader
	Operator   operator.IOperatorDelegator
	Images     imagestore.Store
	Publisher  events.Publisher
	Recognizer ocr.Recognizer
	Logger     *logrus.Logger
}

// NewService creates a new Service from its dependencies.
func NewService(deps Dependencies) *Service {
	return &Service{
		Club:        NewClubService(deps.Reader, deps.Operator),
		Transaction: NewTransactionService(deps.Reader),
		Ledger:      NewLedgerService(deps.Operator, deps.Images, deps.Publisher, deps.Logger),
		Receipt:     NewReceiptService(deps.Recognizer),
	}
}
