package repository

import "context"

// Tx is an opaque transaction/executor handle. The postgres repos accept a
// pgx.Tx or *pgxpool.Conn here and fall back to their pool when nil.
type Tx = any

// NoTX signals "run on the pool, outside any transaction".
var NoTX Tx = nil

// TransactionManager runs fn inside a database transaction, committing when
// fn returns nil and rolling back otherwise.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
