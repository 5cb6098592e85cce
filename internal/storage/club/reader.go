package club

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/club-budget-server/internal/ledger"
)

var _ IClubReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a club by primary key.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Club, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[Club]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("club %s: %w", id, ledger.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns clubs ordered by name. One row past the limit is fetched so the
// caller can tell whether another page exists.
func (r *Reader) List(ctx context.Context, filter *ClubFilter) ([]*Club, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
	}
	if filter != nil {
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Club]())
	if err != nil {
		return nil, err
	}
	return rows, nil
}
