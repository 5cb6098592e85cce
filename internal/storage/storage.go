package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/club-budget-server/internal/config"
	"github.com/carson-networks/club-budget-server/internal/storage/club"
	"github.com/carson-networks/club-budget-server/internal/storage/transaction"
)

// Backend is a store that can open write transactions and serve reads.
type Backend interface {
	Write(ctx context.Context) (*Writer, error)
	Reader() *Reader
	Ping(ctx context.Context) error
	Close() error
}

var _ Backend = (*Storage)(nil)

// Storage is the Postgres backend.
type Storage struct {
	DB     *sql.DB
	exec   bob.DB
	reader *Reader
}

func NewStorage(env *config.Config) (*Storage, error) {
	return Open(env.PostgresDSN())
}

// Open connects to the Postgres database at dsn. It does not run migrations.
func Open(dsn string) (*Storage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	exec := bob.NewDB(db)
	return &Storage{
		DB:   db,
		exec: exec,
		reader: &Reader{
			Clubs:        club.NewReader(exec),
			Transactions: transaction.NewReader(exec),
		},
	}, nil
}

// Write begins a database transaction and returns a Writer bound to it. The
// caller must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.exec.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return NewWriter(tx, club.NewWriter(tx), transaction.NewWriter(tx)), nil
}

func (s *Storage) Reader() *Reader {
	return s.reader
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
