package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

type keyTxType int

const (
	keyTxValue keyTxType = iota
)

// WithinTx выполняет fn в транзакции. Вложенные вызовы переиспользуют транзакцию из контекста.
// Построчные блокировки берутся через SELECT ... FOR UPDATE, поэтому достаточно READ COMMITTED.
func (p *PostgresStorage) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(keyTxValue).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return unavailable("failed to begin transaction", err)
	}

	ctx = context.WithValue(ctx, keyTxValue, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}

		if err != nil {
			_ = tx.Rollback()
			return
		}

		if commitErr := tx.Commit(); commitErr != nil {
			err = unavailable("failed to commit transaction", commitErr)
		}
	}()

	err = fn(ctx)
	return
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(keyTxValue).(*sql.Tx)
	return ok
}

// querier возвращает транзакцию из контекста, если она есть, иначе обычное соединение.
func (p *PostgresStorage) querier(ctx context.Context) Querier {
	if tx, ok := ctx.Value(keyTxValue).(*sql.Tx); ok {
		return &TxQuerier{tx: tx}
	}
	return &SQLQuerier{db: p.db}
}

func (p *PostgresStorage) queryRow(ctx context.Context, builder interface {
	ToSql() (string, []interface{}, error)
}) (*sql.Row, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return p.querier(ctx).QueryRowContext(ctx, query, args...), nil
}
