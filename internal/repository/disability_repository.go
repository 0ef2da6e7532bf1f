package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/welfarelink/pwd-records-api/internal/model"
)

// DisabilityRepo covers the disability_categories and disability_types
// lookup tables. Types belong to exactly one category; the pairing check
// used when creating PWD records lives here too.
type DisabilityRepo struct{ DB *sql.DB }

func NewDisabilityRepo(db *sql.DB) *DisabilityRepo { return &DisabilityRepo{DB: db} }

// ---- categories ----

// ListCategories returns all categories ordered by name ascending.
func (r *DisabilityRepo) ListCategories(ctx context.Context) ([]model.DisabilityCategory, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name FROM disability_categories ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.DisabilityCategory{}
	for rows.Next() {
		var c model.DisabilityCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCategory fetches a category or ErrNotFound.
func (r *DisabilityRepo) GetCategory(ctx context.Context, id uint64) (model.DisabilityCategory, error) {
	var c model.DisabilityCategory
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM disability_categories WHERE id=? LIMIT 1", id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, err
}

// CreateCategory inserts a category and returns its id.
func (r *DisabilityRepo) CreateCategory(ctx context.Context, name string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO disability_categories (name) VALUES (?)", name)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// UpdateCategory renames a category.
func (r *DisabilityRepo) UpdateCategory(ctx context.Context, id uint64, name string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE disability_categories SET name=? WHERE id=?", name, id)
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

// DeleteCategory removes a category unless types or PWD records still
// reference it.
func (r *DisabilityRepo) DeleteCategory(ctx context.Context, id uint64) error {
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
		{"disability_types", "category_id"},
		{"pwd_records", "disability_category_id"},
	})
	if err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM disability_categories WHERE id=?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrNotFound
	}
	return err
}

// ---- types ----

// ListTypes returns all disability types ordered by name ascending.
func (r *DisabilityRepo) ListTypes(ctx context.Context) ([]model.DisabilityType, error) {
	return r.queryTypes(ctx,
		"SELECT id, category_id, name FROM disability_types ORDER BY name ASC")
}

// ListTypesByCategory returns the types belonging to one category.
func (r *DisabilityRepo) ListTypesByCategory(ctx context.Context, categoryID uint64) ([]model.DisabilityType, error) {
	return r.queryTypes(ctx,
		"SELECT id, category_id, name FROM disability_types WHERE category_id=? ORDER BY name ASC",
		categoryID)
}

func (r *DisabilityRepo) queryTypes(ctx context.Context, query string, args ...any) ([]model.DisabilityType, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.DisabilityType{}
	for rows.Next() {
		var t model.DisabilityType
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetType fetches a disability type or ErrNotFound.
func (r *DisabilityRepo) GetType(ctx context.Context, id uint64) (model.DisabilityType, error) {
	var t model.DisabilityType
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, category_id, name FROM disability_types WHERE id=? LIMIT 1",
		id).Scan(&t.ID, &t.CategoryID, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNotFound
	}
	return t, err
}

// CreateType inserts a type under an existing category.
func (r *DisabilityRepo) CreateType(ctx context.Context, categoryID uint64, name string) (uint64, error) {
	if _, err := r.GetCategory(ctx, categoryID); err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO disability_types (category_id, name) VALUES (?,?)", categoryID, name)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// UpdateTypeParams carries the optional fields of a partial type update.
type UpdateTypeParams struct {
	CategoryID *uint64
	Name       *string
}

// UpdateType applies only the provided fields.
func (r *DisabilityRepo) UpdateType(ctx context.Context, id uint64, p UpdateTypeParams) error {
	set := []string{}
	args := []any{}
	if p.CategoryID != nil {
		if _, err := r.GetCategory(ctx, *p.CategoryID); err != nil {
			return err
		}
		set = append(set, "category_id = ?")
		args = append(args, *p.CategoryID)
	}
	if p.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *p.Name)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE disability_types SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
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

// DeleteType removes a type unless PWD records still reference it.
func (r *DisabilityRepo) DeleteType(ctx context.Context, id uint64) error {
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
		{"pwd_records", "disability_type_id"},
	})
	if err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM disability_types WHERE id=?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrNotFound
	}
	return err
}

// TypeBelongsToCategory reports whether the type exists and is filed under
// the given category. PWD record writes use this to reject mismatched
// category/type pairs.
func (r *DisabilityRepo) TypeBelongsToCategory(ctx context.Context, typeID, categoryID uint64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM disability_types WHERE id=? AND category_id=?",
		typeID, categoryID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
