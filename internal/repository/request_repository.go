package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/welfarelink/pwd-records-api/internal/model"
)

// RequestRepo encapsulates queries for the assistance_requests table.
type RequestRepo struct{ DB *sql.DB }

func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{DB: db} }

// Referential validation failures surfaced by Create/Update. Both satisfy
// errors.Is(err, ErrValidation).
var (
	ErrBeneficiaryMissing    = fmt.Errorf("beneficiary does not reference an existing PWD record: %w", ErrValidation)
	ErrAssistanceTypeMissing = fmt.Errorf("assistance type does not exist: %w", ErrValidation)
)

// RequestFilter defines the optional, conjunctive filters and page window
// of a request listing.
type RequestFilter struct {
	Status           model.RequestStatus
	AssistanceTypeID uint64
	BeneficiaryID    uint64
	RequestedBy      uint64
	Search           string // substring over description and beneficiary name
	Page             int
	PerPage          int
}

// RequestRow is the joined listing/detail shape for assistance requests.
type RequestRow struct {
	ID               uint64              `json:"id"`
	AssistanceTypeID uint64              `json:"assistance_type_id"`
	AssistanceType   string              `json:"assistance_type"`
	BeneficiaryID    uint64              `json:"beneficiary_id"`
	BeneficiaryName  string              `json:"beneficiary_name"`
	RequestedBy      uint64              `json:"requested_by"`
	RequestedByName  string              `json:"requested_by_username"`
	Description      string              `json:"description"`
	Amount           float64             `json:"amount"`
	AdminReviewNotes string              `json:"admin_review_notes"`
	Status           model.RequestStatus `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

const requestSelect = `SELECT
		ar.id, ar.assistance_type_id, at.name,
		ar.beneficiary_id, p.full_name,
		ar.requested_by, u.username,
		ar.description, ar.amount, COALESCE(ar.admin_review_notes, ''),
		ar.status, ar.created_at, ar.updated_at
	FROM assistance_requests ar
	JOIN assistance_types at ON at.id = ar.assistance_type_id
	JOIN pwd_records p       ON p.id  = ar.beneficiary_id
	JOIN users u             ON u.id  = ar.requested_by`

func scanRequest(sc interface{ Scan(...any) error }) (RequestRow, error) {
	var d RequestRow
	err := sc.Scan(
		&d.ID, &d.AssistanceTypeID, &d.AssistanceType,
		&d.BeneficiaryID, &d.BeneficiaryName,
		&d.RequestedBy, &d.RequestedByName,
		&d.Description, &d.Amount, &d.AdminReviewNotes,
		&d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

// List returns one page of requests matching the filter plus the unpaged
// total.
func (r *RequestRepo) List(ctx context.Context, f RequestFilter) ([]RequestRow, int64, error) {
	where := []string{}
	args := []any{}

	if f.Status != "" {
		where = append(where, "ar.status = ?")
		args = append(args, f.Status)
	}
	if f.AssistanceTypeID > 0 {
		where = append(where, "ar.assistance_type_id = ?")
		args = append(args, f.AssistanceTypeID)
	}
	if f.BeneficiaryID > 0 {
		where = append(where, "ar.beneficiary_id = ?")
		args = append(args, f.BeneficiaryID)
	}
	if f.RequestedBy > 0 {
		where = append(where, "ar.requested_by = ?")
		args = append(args, f.RequestedBy)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		where = append(where, "(LOWER(ar.description) LIKE ? OR LOWER(p.full_name) LIKE ?)")
		args = append(args, needle, needle)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM assistance_requests ar
		JOIN pwd_records p ON p.id = ar.beneficiary_id
		WHERE ` + cond
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.PerPage
	offset := (f.Page - 1) * f.PerPage

	dataSQL := requestSelect + "\n\tWHERE " + cond + `
	ORDER BY ar.created_at DESC, ar.id DESC
	LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.DB.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]RequestRow, 0, limit)
	for rows.Next() {
		d, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID fetches the joined request or ErrNotFound.
func (r *RequestRepo) GetByID(ctx context.Context, id uint64) (*RequestRow, error) {
	d, err := scanRequest(r.DB.QueryRowContext(ctx, requestSelect+"\n\tWHERE ar.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new request with status pending after verifying that the
// beneficiary and the assistance type exist. RequestedBy is the current
// authenticated user, stamped by the handler.
func (r *RequestRepo) Create(ctx context.Context, req *model.AssistanceRequest) error {
	if err := pwdExists(ctx, r.DB, req.BeneficiaryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrBeneficiaryMissing
		}
		return err
	}
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM assistance_types WHERE id=?", req.AssistanceTypeID).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return ErrAssistanceTypeMissing
	}

	req.Status = model.RequestPending
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO assistance_requests
			(assistance_type_id, beneficiary_id, requested_by, description, amount, status)
		 VALUES (?,?,?,?,?,?)`,
		req.AssistanceTypeID, req.BeneficiaryID, req.RequestedBy,
		req.Description, req.Amount, req.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM assistance_requests WHERE id=?", req.ID).Scan(&req.CreatedAt)
}

// UpdateRequestParams carries the optional fields of a partial update.
type UpdateRequestParams struct {
	AssistanceTypeID *uint64
	BeneficiaryID    *uint64
	Description      *string
	Amount           *float64
}

// Update applies only the provided fields, re-checking referential targets
// when they change.
func (r *RequestRepo) Update(ctx context.Context, id uint64, p UpdateRequestParams) error {
	set := []string{}
	args := []any{}
	if p.AssistanceTypeID != nil {
		var n int
		if err := r.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM assistance_types WHERE id=?", *p.AssistanceTypeID).Scan(&n); err != nil {
			return err
		}
		if n == 0 {
			return ErrAssistanceTypeMissing
		}
		set = append(set, "assistance_type_id = ?")
		args = append(args, *p.AssistanceTypeID)
	}
	if p.BeneficiaryID != nil {
		if err := pwdExists(ctx, r.DB, *p.BeneficiaryID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrBeneficiaryMissing
			}
			return err
		}
		set = append(set, "beneficiary_id = ?")
		args = append(args, *p.BeneficiaryID)
	}
	if p.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Amount != nil {
		set = append(set, "amount = ?")
		args = append(args, *p.Amount)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE assistance_requests SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus records the new workflow status. When adminNotes is non-nil
// it overwrites admin_review_notes entirely (last write wins, never
// appended).
func (r *RequestRepo) UpdateStatus(ctx context.Context, id uint64, status model.RequestStatus, adminNotes *string) error {
	var (
		res sql.Result
		err error
	)
	if adminNotes != nil {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE assistance_requests SET status=?, admin_review_notes=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
			status, *adminNotes, id)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE assistance_requests SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
			status, id)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a request.
func (r *RequestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM assistance_requests WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
