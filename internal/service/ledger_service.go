package service

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/club-budget-server/internal/events"
	"github.com/carson-networks/club-budget-server/internal/imagestore"
	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/logging"
	"github.com/carson-networks/club-budget-server/internal/operator"
	"github.com/carson-networks/club-budget-server/internal/operator/actions"
)

// RecordInput is a new transaction as entered by a user.
type RecordInput struct {
	ClubID       uuid.UUID
	Type         ledger.Type
	Amount       int64
	Description  string
	ReceiptImage []byte
}

// RecordResult is the recorded transaction. UploadErr is set when a receipt
// image was supplied but could not be stored; the transaction is still
// recorded, without an image reference.
type RecordResult struct {
	Transaction *Transaction
	UploadErr   error
}

// LedgerService applies ledger mutations through the operator and announces
// the committed changes.
type LedgerService struct {
	operator  operator.IOperatorDelegator
	images    imagestore.Store
	publisher events.Publisher
	log       *logrus.Logger
}

// NewLedgerService creates a new LedgerService. images may be nil, in which
// case receipt images are reported as not stored.
func NewLedgerService(op operator.IOperatorDelegator, images imagestore.Store, publisher events.Publisher, log *logrus.Logger) *LedgerService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LedgerService{
		operator:  op,
		images:    images,
		publisher: publisher,
		log:       log,
	}
}

// RecordTransaction records an income or expense and updates the club balance.
func (s *LedgerService) RecordTransaction(ctx context.Context, input RecordInput) (*RecordResult, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	result := &RecordResult{}
	var receiptRef null.Val[string]
	if len(input.ReceiptImage) > 0 {
		ref, err := s.uploadReceipt(ctx, id, input.ReceiptImage)
		if err != nil {
			result.UploadErr = err
		} else {
			receiptRef = null.From(ref)
		}
	}

	action := &actions.RecordTransaction{
		ID:              id,
		ClubID:          input.ClubID,
		Type:            input.Type,
		Amount:          input.Amount,
		Description:     input.Description,
		ReceiptImageRef: receiptRef,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.process(ctx, "recordMs", action); err != nil {
		return nil, err
	}

	result.Transaction = transactionFromStorage(action.Result)
	s.publish(ctx, events.TransactionRecorded, result.Transaction, result.Transaction.BalanceAfter)
	return result, nil
}

// UpdateTransaction replaces a transaction's type, amount and description and
// applies the difference to the club balance.
func (s *LedgerService) UpdateTransaction(ctx context.Context, id uuid.UUID, txType ledger.Type, amount int64, description string) (*Transaction, error) {
	action := &actions.UpdateTransaction{
		TransactionID: id,
		Type:          txType,
		Amount:        amount,
		Description:   description,
	}
	if err := s.process(ctx, "updateMs", action); err != nil {
		return nil, err
	}

	updated := transactionFromStorage(action.Result)
	s.publish(ctx, events.TransactionUpdated, updated, updated.BalanceAfter)
	return updated, nil
}

// DeleteTransaction removes a transaction and reverses its effect. It returns
// the club's balance afterwards.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id uuid.UUID) (int64, error) {
	action := &actions.DeleteTransaction{TransactionID: id}
	if err := s.process(ctx, "deleteMs", action); err != nil {
		return 0, err
	}

	s.publish(ctx, events.TransactionDeleted, transactionFromStorage(action.Deleted), action.ClubBalance)
	return action.ClubBalance, nil
}

func (s *LedgerService) process(ctx context.Context, timing string, action actions.IAction) error {
	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddTiming(timing)()
	}
	return s.operator.Process(ctx, action)
}

func (s *LedgerService) uploadReceipt(ctx context.Context, id uuid.UUID, image []byte) (string, error) {
	if s.images == nil {
		return "", imagestore.ErrDisabled
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddTiming("uploadReceiptMs")()
	}

	ref, err := s.images.Upload(ctx, imagestore.FileName(id.String(), image), image)
	if err != nil {
		s.log.WithError(err).
			WithField("transactionID", id.String()).
			Warn("LedgerService.RecordTransaction.uploadReceipt")
		return "", err
	}
	return ref, nil
}

func (s *LedgerService) publish(ctx context.Context, eventType string, tx *Transaction, clubBalance int64) {
	event := events.LedgerEvent{
		Type:          eventType,
		TransactionID: tx.ID,
		ClubID:        tx.ClubID,
		Direction:     string(tx.Type),
		Amount:        tx.Amount,
		ClubBalance:   clubBalance,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WithError(err).
			WithField("event", eventType).
			WithField("transactionID", tx.ID.String()).
			Error("LedgerService.publish")
	}
}
