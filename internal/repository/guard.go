package repository

import (
	"context"
	"database/sql"
)

// usageCheck names a dependent table/column pair inspected before a delete.
type usageCheck struct {
	table  string
	column string
}

// rowQuerier is satisfied by *sql.DB and *sql.Tx; the guard runs inside the
// same transaction as the delete.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// checkUsage counts rows referencing id in each dependent table and returns
// an *InUseError naming the first table with a nonzero count. The count is a
// locking read (FOR UPDATE): under InnoDB the next-key locks on the scanned
// range block a concurrent insert of a referencing row until the delete
// transaction finishes, so the check cannot pass while a new reference slips
// in before the delete commits.
func checkUsage(ctx context.Context, q rowQuerier, id uint64, checks []usageCheck) error {
	for _, ch := range checks {
		var n int64
		query := "SELECT COUNT(*) FROM " + ch.table + " WHERE " + ch.column + " = ? FOR UPDATE"
		if err := q.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			return &InUseError{Table: ch.table, Count: n}
		}
	}
	return nil
}
