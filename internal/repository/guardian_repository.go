package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/welfarelink/pwd-records-api/internal/model"
)

// GuardianRepo manages the guardians satellite table. Each PWD record has
// at most one guardian row; the unique index on pwd_id enforces this even
// under concurrent creates.
type GuardianRepo struct{ DB *sql.DB }

func NewGuardianRepo(db *sql.DB) *GuardianRepo { return &GuardianRepo{DB: db} }

const guardianColumns = "id, pwd_id, full_name, relationship, phone, address, created_at, updated_at"

// GetByPWD fetches the guardian of a record or ErrNotFound.
func (r *GuardianRepo) GetByPWD(ctx context.Context, pwdID uint64) (model.Guardian, error) {
	var g model.Guardian
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+guardianColumns+" FROM guardians WHERE pwd_id=? LIMIT 1", pwdID).
		Scan(&g.ID, &g.PWDID, &g.FullName, &g.Relationship, &g.Phone, &g.Address, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return g, ErrNotFound
	}
	return g, err
}

// Create inserts the guardian for a record. ErrNotFound when the record does
// not exist; ErrConflict when the record already has a guardian.
func (r *GuardianRepo) Create(ctx context.Context, g *model.Guardian) error {
	if err := pwdExists(ctx, r.DB, g.PWDID); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO guardians (pwd_id, full_name, relationship, phone, address) VALUES (?,?,?,?,?)",
		g.PWDID, g.FullName, g.Relationship, g.Phone, g.Address)
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
	g.ID = uint64(id)
	return nil
}

// UpdateGuardianParams carries the optional fields of a partial update.
type UpdateGuardianParams struct {
	FullName     *string
	Relationship *string
	Phone        *string
	Address      *string
}

// Update applies only the provided fields.
func (r *GuardianRepo) Update(ctx context.Context, id uint64, p UpdateGuardianParams) error {
	set := []string{}
	args := []any{}
	if p.FullName != nil {
		set = append(set, "full_name = ?")
		args = append(args, *p.FullName)
	}
	if p.Relationship != nil {
		set = append(set, "relationship = ?")
		args = append(args, *p.Relationship)
	}
	if p.Phone != nil {
		set = append(set, "phone = ?")
		args = append(args, *p.Phone)
	}
	if p.Address != nil {
		set = append(set, "address = ?")
		args = append(args, *p.Address)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE guardians SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a guardian row.
func (r *GuardianRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM guardians WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// pwdExists verifies the parent record before a satellite insert so the
// caller gets a NotFound instead of a bare foreign-key failure.
func pwdExists(ctx context.Context, q rowQuerier, pwdID uint64) error {
	var n int
	if err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pwd_records WHERE id=?", pwdID).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
