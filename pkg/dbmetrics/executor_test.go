package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExecutor struct {
	name string
}

func (stubExecutor) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (stubExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (stubExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

type stubTx struct {
	stubExecutor
}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	db := stubExecutor{name: "db"}
	tx := stubTx{stubExecutor{name: "tx"}}

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Equal(t, db, GetExecutor(ctx, db))

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))
}

func TestTxFromContext_NilTx(t *testing.T) {
	ctx := WithTx(context.Background(), nil)

	_, ok := TxFromContext(ctx)
	assert.False(t, ok)
}
