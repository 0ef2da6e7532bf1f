package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/welfarelink/pwd-records-api/internal/model"
)

// SupportNeedRepo manages the support_needs satellite table. Unlike guardian
// and education rows, a PWD record may have any number of support needs.
type SupportNeedRepo struct{ DB *sql.DB }

func NewSupportNeedRepo(db *sql.DB) *SupportNeedRepo { return &SupportNeedRepo{DB: db} }

// ListByPWD returns every support-need row of a record, oldest first.
func (r *SupportNeedRepo) ListByPWD(ctx context.Context, pwdID uint64) ([]model.SupportNeed, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, pwd_id, need, notes, created_at, updated_at FROM support_needs WHERE pwd_id=? ORDER BY id",
		pwdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SupportNeed{}
	for rows.Next() {
		var s model.SupportNeed
		if err := rows.Scan(&s.ID, &s.PWDID, &s.Need, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Create appends a support-need row to a record.
func (r *SupportNeedRepo) Create(ctx context.Context, s *model.SupportNeed) error {
	if err := pwdExists(ctx, r.DB, s.PWDID); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO support_needs (pwd_id, need, notes) VALUES (?,?,?)",
		s.PWDID, s.Need, s.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// UpdateSupportNeedParams carries the optional fields of a partial update.
type UpdateSupportNeedParams struct {
	Need  *string
	Notes *string
}

// Update applies only the provided fields.
func (r *SupportNeedRepo) Update(ctx context.Context, id uint64, p UpdateSupportNeedParams) error {
	set := []string{}
	args := []any{}
	if p.Need != nil {
		set = append(set, "need = ?")
		args = append(args, *p.Need)
	}
	if p.Notes != nil {
		set = append(set, "notes = ?")
		args = append(args, *p.Notes)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE support_needs SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a support-need row.
func (r *SupportNeedRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM support_needs WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
