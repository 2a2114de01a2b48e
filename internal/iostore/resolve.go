package iostore

import (
	"context"
	"database/sql"
	"errors"
)

// lookup is one way to find a stored entity. args returns false when the
// value lacks the fields the lookup needs.
type lookup[T any] struct {
	field string
	query string
	args  func(*T) ([]any, bool)
}

// kind describes how an entity is stored.
type kind[T any] struct {
	name string

	// lookups are tried in order, the first that returns a row wins.
	lookups []lookup[T]

	// scan reads a stored row into the value, including its id.
	scan func(*sql.Row, *T) error

	insert string
	values func(*T) []any
	id     func(*T) int64
}

// resolve looks the value up and, when found, replaces it with the stored
// row. Having no usable key is not an error, the value is just not found.
func resolve[T any](ctx context.Context, q querier, k *kind[T], v *T) (bool, error) {
	for _, l := range k.lookups {
		args, ok := l.args(v)
		if !ok {
			continue
		}
		stored := *v
		err := k.scan(q.QueryRowContext(ctx, l.query, args...), &stored)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return false, QueryError(k.name, l.field, err)
		}
		*v = stored
		return true, nil
	}
	return false, nil
}
