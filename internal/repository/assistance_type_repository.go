package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/welfarelink/pwd-records-api/internal/model"
)

// AssistanceTypeRepo encapsulates queries for the assistance_types lookup
// table.
type AssistanceTypeRepo struct{ DB *sql.DB }

func NewAssistanceTypeRepo(db *sql.DB) *AssistanceTypeRepo { return &AssistanceTypeRepo{DB: db} }

// List returns all assistance types ordered by name ascending.
func (r *AssistanceTypeRepo) List(ctx context.Context) ([]model.AssistanceType, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM assistance_types ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.AssistanceType{}
	for rows.Next() {
		var t model.AssistanceType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetByID fetches an assistance type or ErrNotFound.
func (r *AssistanceTypeRepo) GetByID(ctx context.Context, id uint64) (model.AssistanceType, error) {
	var t model.AssistanceType
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM assistance_types WHERE id=? LIMIT 1", id).Scan(&t.ID, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNotFound
	}
	return t, err
}

// Create inserts an assistance type and returns its id.
func (r *AssistanceTypeRepo) Create(ctx context.Context, name string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO assistance_types (name) VALUES (?)", name)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// Update renames an assistance type.
func (r *AssistanceTypeRepo) Update(ctx context.Context, id uint64, name string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE assistance_types SET name=? WHERE id=?", name, id)
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

// Delete removes an assistance type unless records or requests reference it.
func (r *AssistanceTypeRepo) Delete(ctx context.Context, id uint64) error {
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
		{"pwd_records", "assistance_type_needed_id"},
		{"assistance_requests", "assistance_type_id"},
	})
	if err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM assistance_types WHERE id=?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrNotFound
	}
	return err
}
