// Package memory is an in-process storage backend. A write transaction holds
// the store lock and works on a copy of the state, which replaces the
// committed state on Commit.
package memory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/club-budget-server/internal/ledger"
	"github.com/carson-networks/club-budget-server/internal/storage"
	"github.com/carson-networks/club-budget-server/internal/storage/club"
	"github.com/carson-networks/club-budget-server/internal/storage/transaction"
)

var errTxDone = errors.New("memory: transaction already finished")

type state struct {
	clubs        map[uuid.UUID]club.Club
	transactions map[uuid.UUID]transaction.Transaction
}

func (s *state) clone() *state {
	cp := &state{
		clubs:        make(map[uuid.UUID]club.Club, len(s.clubs)),
		transactions: make(map[uuid.UUID]transaction.Transaction, len(s.transactions)),
	}
	for id, c := range s.clubs {
		cp.clubs[id] = c
	}
	for id, t := range s.transactions {
		cp.transactions[id] = t
	}
	return cp
}

var _ storage.Backend = (*Store)(nil)

type Store struct {
	mu        sync.RWMutex
	committed *state
	reader    *storage.Reader
}

func NewStore() *Store {
	s := &Store{
		committed: &state{
			clubs:        make(map[uuid.UUID]club.Club),
			transactions: make(map[uuid.UUID]transaction.Transaction),
		},
	}
	s.reader = &storage.Reader{
		Clubs:        &clubTable{view: s.read},
		Transactions: &transactionTable{view: s.read},
	}
	return s
}

func (s *Store) read(fn func(*state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.committed)
}

// Write blocks until no other write transaction is open.
func (s *Store) Write(ctx context.Context) (*storage.Writer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	staged := s.committed.clone()
	view := func(fn func(*state)) { fn(staged) }

	tx := &memoryTx{store: s, staged: staged}
	return storage.NewWriter(tx, &clubTable{view: view}, &transactionTable{view: view}), nil
}

func (s *Store) Reader() *storage.Reader {
	return s.reader
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error {
	return nil
}

type memoryTx struct {
	store  *Store
	staged *state
	done   bool
}

func (t *memoryTx) Commit(_ context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true
	t.store.committed = t.staged
	t.store.mu.Unlock()
	return nil
}

func (t *memoryTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

type clubTable struct {
	view func(func(*state))
}

func (c *clubTable) FindByID(_ context.Context, id uuid.UUID) (*club.Club, error) {
	var (
		found club.Club
		ok    bool
	)
	c.view(func(s *state) { found, ok = s.clubs[id] })
	if !ok {
		return nil, fmt.Errorf("club %s: %w", id, ledger.ErrNotFound)
	}
	return &found, nil
}

func (c *clubTable) List(_ context.Context, filter *club.ClubFilter) ([]*club.Club, error) {
	var rows []*club.Club
	c.view(func(s *state) {
		for _, row := range s.clubs {
			rows = append(rows, &row)
		}
	})

	slices.SortFunc(rows, func(a, b *club.Club) int {
		if n := strings.Compare(a.Name, b.Name); n != 0 {
			return n
		}
		return bytes.Compare(a.ID.Bytes(), b.ID.Bytes())
	})

	if filter == nil {
		return rows, nil
	}
	return page(rows, filter.Offset, filter.Limit), nil
}

func (c *clubTable) Insert(_ context.Context, create *club.ClubCreate) error {
	var err error
	c.view(func(s *state) {
		if _, exists := s.clubs[create.ID]; exists {
			err = fmt.Errorf("club %s already exists", create.ID)
			return
		}
		s.clubs[create.ID] = club.Club{
			ID:            create.ID,
			Name:          create.Name,
			TotalBudget:   create.TotalBudget,
			CurrentBudget: create.TotalBudget,
			CreatedAt:     create.CreatedAt,
		}
	})
	return err
}

func (c *clubTable) CompareAndSwapBalance(_ context.Context, id uuid.UUID, update club.BalanceUpdate) error {
	var err error
	c.view(func(s *state) {
		row, ok := s.clubs[id]
		if !ok || row.Version != update.ExpectedVersion {
			err = fmt.Errorf("club %s at version %d: %w", id, update.ExpectedVersion, ledger.ErrConflictingWrite)
			return
		}
		row.TotalBudget = update.TotalBudget
		row.CurrentBudget = update.CurrentBudget
		row.Version++
		s.clubs[id] = row
	})
	return err
}

type transactionTable struct {
	view func(func(*state))
}

func (t *transactionTable) FindByID(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	var (
		found transaction.Transaction
		ok    bool
	)
	t.view(func(s *state) { found, ok = s.transactions[id] })
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
	}
	return &found, nil
}

func (t *transactionTable) List(_ context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	var rows []*transaction.Transaction
	t.view(func(s *state) {
		for _, row := range s.transactions {
			if filter != nil && filter.ClubID != nil && row.ClubID != *filter.ClubID {
				continue
			}
			if filter != nil && filter.Type != nil && row.Type != *filter.Type {
				continue
			}
			if filter != nil && filter.MaxCreationTime != nil && row.CreatedAt.After(*filter.MaxCreationTime) {
				continue
			}
			rows = append(rows, &row)
		}
	})

	slices.SortFunc(rows, func(a, b *transaction.Transaction) int {
		if n := b.CreatedAt.Compare(a.CreatedAt); n != 0 {
			return n
		}
		return bytes.Compare(b.ID.Bytes(), a.ID.Bytes())
	})

	if filter == nil {
		return rows, nil
	}
	return page(rows, filter.Offset, filter.Limit), nil
}

func (t *transactionTable) Insert(_ context.Context, record *transaction.Transaction) error {
	var err error
	t.view(func(s *state) {
		if _, ok := s.clubs[record.ClubID]; !ok {
			err = fmt.Errorf("club %s: %w", record.ClubID, ledger.ErrNotFound)
			return
		}
		if _, exists := s.transactions[record.ID]; exists {
			err = fmt.Errorf("transaction %s already exists", record.ID)
			return
		}
		s.transactions[record.ID] = *record
	})
	return err
}

func (t *transactionTable) Update(_ context.Context, id uuid.UUID, update *transaction.TransactionUpdate) error {
	var err error
	t.view(func(s *state) {
		row, ok := s.transactions[id]
		if !ok {
			err = fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
			return
		}
		row.Type = update.Type
		row.Amount = update.Amount
		row.Description = update.Description
		row.BalanceAfter = update.BalanceAfter
		s.transactions[id] = row
	})
	return err
}

func (t *transactionTable) Delete(_ context.Context, id uuid.UUID) error {
	var err error
	t.view(func(s *state) {
		if _, ok := s.transactions[id]; !ok {
			err = fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
			return
		}
		delete(s.transactions, id)
	})
	return err
}

// page applies offset and returns up to limit+1 rows, matching the Postgres
// readers.
func page[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit > 0 && len(rows) > limit+1 {
		rows = rows[:limit+1]
	}
	return rows
}
