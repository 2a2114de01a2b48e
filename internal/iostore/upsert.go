package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vgarchive/vgdb/pkg/store"
)

// upsert returns the stored entity, inserting it when it is absent.
func upsert[T any](
	ctx context.Context,
	sqlDB *sql.DB,
	k *kind[T],
	v *T,
	tags tagFunc,
) (store.Resolution, error) {
	var res store.Resolution

	found, err := resolve(ctx, sqlDB, k, v)
	if err != nil {
		return res, err
	}
	if found {
		return foundRow(ctx, sqlDB, k, v, tags)
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return res, TransactionError(k.name, err)
	}
	// no-op after commit
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, k.insert, k.values(v)...); err != nil {
		pgErr, ok := pgError(err)
		switch {
		case ok && pgErr.Code == uniqueViolation:
			_ = tx.Rollback()
			slog.Debug("Concurrent insert, resolving again", "kind", k.name)
			return recovered(ctx, sqlDB, k, v, tags)
		case ok && pgErr.Code == notNullViolation:
			return res, RequiredFieldError(k.name, pgErr.ColumnName, err)
		default:
			return res, InsertError(k.name, err)
		}
	}

	found, err = resolve(ctx, tx, k, v)
	if err != nil {
		return res, err
	}
	if !found {
		return res, InsertError(k.name, fmt.Errorf("inserted row not found"))
	}

	id := k.id(v)
	if tags != nil {
		if err = tags(ctx, tx, id); err != nil {
			return res, InsertError(k.name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return res, TransactionError(k.name, err)
	}
	return store.Resolution{Status: store.StatusInserted, ID: id}, nil
}

// recovered resolves a row inserted by a concurrent transaction.
func recovered[T any](
	ctx context.Context,
	sqlDB *sql.DB,
	k *kind[T],
	v *T,
	tags tagFunc,
) (store.Resolution, error) {
	found, err := resolve(ctx, sqlDB, k, v)
	if err != nil {
		return store.Resolution{}, err
	}
	if !found {
		return store.Resolution{}, InsertError(k.name,
			fmt.Errorf("duplicate key without a matching row"))
	}
	return foundRow(ctx, sqlDB, k, v, tags)
}

// foundRow ensures tags of an existing row.
func foundRow[T any](
	ctx context.Context,
	sqlDB *sql.DB,
	k *kind[T],
	v *T,
	tags tagFunc,
) (store.Resolution, error) {
	id := k.id(v)
	if tags != nil {
		if err := tags(ctx, sqlDB, id); err != nil {
			return store.Resolution{}, InsertError(k.name, err)
		}
	}
	return store.Resolution{Status: store.StatusFound, ID: id}, nil
}
