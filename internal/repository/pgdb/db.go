package pgdb

import (
	"context"

	"github.com/DRSN-tech/product-catalog/pkg/tr"
	"github.com/jackc/pgx/v5"
)

// DB — то, что репозиториям нужно от пула соединений (pgxpool.Pool).
type DB interface {
	tr.Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}
