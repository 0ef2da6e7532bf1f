package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/welfarelink/pwd-records-api/internal/model"
)

// EducationRepo manages the educations satellite table, one row per PWD
// record (unique index on pwd_id).
type EducationRepo struct{ DB *sql.DB }

func NewEducationRepo(db *sql.DB) *EducationRepo { return &EducationRepo{DB: db} }

// GetByPWD fetches the education row of a record or ErrNotFound.
func (r *EducationRepo) GetByPWD(ctx context.Context, pwdID uint64) (model.Education, error) {
	var e model.Education
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, pwd_id, level, school_name, year_ended, created_at, updated_at FROM educations WHERE pwd_id=? LIMIT 1",
		pwdID).Scan(&e.ID, &e.PWDID, &e.Level, &e.SchoolName, &e.YearEnded, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return e, ErrNotFound
	}
	return e, err
}

// Create inserts the education row for a record. ErrConflict when one
// already exists.
func (r *EducationRepo) Create(ctx context.Context, e *model.Education) error {
	if err := pwdExists(ctx, r.DB, e.PWDID); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO educations (pwd_id, level, school_name, year_ended) VALUES (?,?,?,?)",
		e.PWDID, e.Level, e.SchoolName, e.YearEnded)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// UpdateEducationParams carries the optional fields of a partial update.
type UpdateEducationParams struct {
	Level      *string
	SchoolName *string
	YearEnded  *string
}

// Update applies only the provided fields.
func (r *EducationRepo) Update(ctx context.Context, id uint64, p UpdateEducationParams) error {
	set := []string{}
	args := []any{}
	if p.Level != nil {
		set = append(set, "level = ?")
		args = append(args, *p.Level)
	}
	if p.SchoolName != nil {
		set = append(set, "school_name = ?")
		args = append(args, *p.SchoolName)
	}
	if p.YearEnded != nil {
		set = append(set, "year_ended = ?")
		args = append(args, *p.YearEnded)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE educations SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an education row.
func (r *EducationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM educations WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
