package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/welfarelink/pwd-records-api/internal/model"
)

// CommunityRepo encapsulates queries for the communities lookup table.
type CommunityRepo struct{ DB *sql.DB }

func NewCommunityRepo(db *sql.DB) *CommunityRepo { return &CommunityRepo{DB: db} }

// List returns all communities ordered by name ascending.
func (r *CommunityRepo) List(ctx context.Context) ([]model.Community, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM communities ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Community{}
	for rows.Next() {
		var c model.Community
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches a community or ErrNotFound.
func (r *CommunityRepo) GetByID(ctx context.Context, id uint64) (model.Community, error) {
	var c model.Community
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM communities WHERE id=? LIMIT 1", id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, err
}

// Create inserts a community and returns its id. Uniqueness of the name is
// enforced by the DB index; a duplicate maps to ErrConflict.
func (r *CommunityRepo) Create(ctx context.Context, name string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO communities (name) VALUES (?)", name)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// Update renames a community.
func (r *CommunityRepo) Update(ctx context.Context, id uint64, name string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE communities SET name=? WHERE id=?", name, id)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a community unless PWD records still reference it. Guard
// and delete run in one transaction.
func (r *CommunityRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = checkUsage(ctx, tx, id, []usageCheck{
		{"pwd_records", "community_id"},
	})
	if err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM communities WHERE id=?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrNotFound
	}
	return err
}
