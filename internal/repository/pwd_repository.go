package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/welfarelink/pwd-records-api/internal/model"
)

// PWDRepo encapsulates queries for the core pwd_records table and its
// cross-entity reads (joined detail view, filtered list, dashboard totals).
type PWDRepo struct{ DB *sql.DB }

func NewPWDRepo(db *sql.DB) *PWDRepo { return &PWDRepo{DB: db} }

// ErrCategoryTypeMismatch rejects a record whose disability type is not
// filed under the stated disability category.
var ErrCategoryTypeMismatch = errors.New("disability type does not belong to the selected category")

// PWDFilter defines the optional, conjunctive filters and the page window
// of a record listing. Zero values mean "not filtered".
type PWDFilter struct {
	Quarter     model.Quarter
	Year        int
	Status      model.RecordStatus
	CommunityID uint64
	CategoryID  uint64
	Search      string // case-insensitive substring over name/contact fields
	Page        int
	PerPage     int
}

// PWDListRow is the summary shape returned by List; heavy free-text columns
// stay out of listings.
type PWDListRow struct {
	ID        uint64             `json:"id"`
	FullName  string             `json:"full_name"`
	Gender    model.Gender       `json:"gender"`
	Quarter   model.Quarter      `json:"quarter"`
	Year      int                `json:"year"`
	Community string             `json:"community"`
	Category  string             `json:"disability_category"`
	Type      string             `json:"disability_type"`
	Status    model.RecordStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}

// PWDDetail is the fully joined single-record view with every foreign key
// resolved to its display name.
type PWDDetail struct {
	ID                   uint64             `json:"id"`
	UserID               uint64             `json:"user_id"`
	Quarter              model.Quarter      `json:"quarter"`
	Year                 int                `json:"year"`
	FullName             string             `json:"full_name"`
	Gender               model.Gender       `json:"gender"`
	Phone                string             `json:"phone"`
	Email                string             `json:"email"`
	Address              string             `json:"address"`
	DisabilityCategoryID uint64             `json:"disability_category_id"`
	DisabilityCategory   string             `json:"disability_category"`
	DisabilityTypeID     uint64             `json:"disability_type_id"`
	DisabilityType       string             `json:"disability_type"`
	CommunityID          uint64             `json:"community_id"`
	Community            string             `json:"community"`
	AssistanceTypeID     uint64             `json:"assistance_type_needed_id"`
	AssistanceType       string             `json:"assistance_type_needed"`
	SupportDescription   string             `json:"support_description"`
	SupportingDocuments  string             `json:"supporting_documents"`
	Status               model.RecordStatus `json:"status"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// List returns one page of records matching the filter plus the unpaged
// total. Filters are ANDed; absent ones don't constrain the query.
func (r *PWDRepo) List(ctx context.Context, f PWDFilter) ([]PWDListRow, int64, error) {
	where := []string{}
	args := []any{}

	if f.Quarter != "" {
		where = append(where, "p.quarter = ?")
		args = append(args, f.Quarter)
	}
	if f.Year > 0 {
		where = append(where, "p.year = ?")
		args = append(args, f.Year)
	}
	if f.Status != "" {
		where = append(where, "p.status = ?")
		args = append(args, f.Status)
	}
	if f.CommunityID > 0 {
		where = append(where, "p.community_id = ?")
		args = append(args, f.CommunityID)
	}
	if f.CategoryID > 0 {
		where = append(where, "p.disability_category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		where = append(where, "(LOWER(p.full_name) LIKE ? OR LOWER(p.phone) LIKE ? OR LOWER(p.email) LIKE ?)")
		args = append(args, needle, needle, needle)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := "SELECT COUNT(*) FROM pwd_records p WHERE " + cond
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.PerPage
	offset := (f.Page - 1) * f.PerPage

	dataSQL := `SELECT
			p.id, p.full_name, p.gender, p.quarter, p.year,
			c.name AS community, dc.name AS category, dt.name AS type,
			p.status, p.created_at
		FROM pwd_records p
		JOIN communities c           ON c.id  = p.community_id
		JOIN disability_categories dc ON dc.id = p.disability_category_id
		JOIN disability_types dt      ON dt.id = p.disability_type_id
		WHERE ` + cond + `
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.DB.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PWDListRow, 0, limit)
	for rows.Next() {
		var d PWDListRow
		if err := rows.Scan(
			&d.ID, &d.FullName, &d.Gender, &d.Quarter, &d.Year,
			&d.Community, &d.Category, &d.Type,
			&d.Status, &d.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetDetail fetches the fully joined record or ErrNotFound.
func (r *PWDRepo) GetDetail(ctx context.Context, id uint64) (*PWDDetail, error) {
	const q = `SELECT
			p.id, p.user_id, p.quarter, p.year, p.full_name, p.gender,
			p.phone, p.email, p.address,
			p.disability_category_id, dc.name,
			p.disability_type_id, dt.name,
			p.community_id, c.name,
			p.assistance_type_needed_id, at.name,
			p.support_description, p.supporting_documents,
			p.status, p.created_at, p.updated_at
		FROM pwd_records p
		JOIN disability_categories dc ON dc.id = p.disability_category_id
		JOIN disability_types dt      ON dt.id = p.disability_type_id
		JOIN communities c            ON c.id  = p.community_id
		JOIN assistance_types at      ON at.id = p.assistance_type_needed_id
		WHERE p.id = ?`
	var d PWDDetail
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.UserID, &d.Quarter, &d.Year, &d.FullName, &d.Gender,
		&d.Phone, &d.Email, &d.Address,
		&d.DisabilityCategoryID, &d.DisabilityCategory,
		&d.DisabilityTypeID, &d.DisabilityType,
		&d.CommunityID, &d.Community,
		&d.AssistanceTypeID, &d.AssistanceType,
		&d.SupportDescription, &d.SupportingDocuments,
		&d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new record with status pending after verifying that the
// disability type belongs to the stated category. On success the record's
// ID, Status and CreatedAt fields are populated.
func (r *PWDRepo) Create(ctx context.Context, rec *model.PWDRecord) error {
	ok, err := r.typePairs(ctx, r.DB, rec.DisabilityTypeID, rec.DisabilityCategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryTypeMismatch
	}

	rec.Status = model.RecordPending
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO pwd_records
			(user_id, quarter, year, full_name, gender, phone, email, address,
			 disability_category_id, disability_type_id, community_id,
			 assistance_type_needed_id, support_description, supporting_documents, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.UserID, rec.Quarter, rec.Year, rec.FullName, rec.Gender,
		rec.Phone, rec.Email, rec.Address,
		rec.DisabilityCategoryID, rec.DisabilityTypeID, rec.CommunityID,
		rec.AssistanceTypeNeededID, rec.SupportDescription, rec.SupportingDocuments,
		rec.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)

	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM pwd_records WHERE id=?", rec.ID).Scan(&rec.CreatedAt)
}

// UpdatePWDParams carries the optional fields of a partial record update.
type UpdatePWDParams struct {
	Quarter                *model.Quarter
	Year                   *int
	FullName               *string
	Gender                 *model.Gender
	Phone                  *string
	Email                  *string
	Address                *string
	DisabilityCategoryID   *uint64
	DisabilityTypeID       *uint64
	CommunityID            *uint64
	AssistanceTypeNeededID *uint64
	SupportDescription     *string
	SupportingDocuments    *string
}

// Update applies only the provided fields. When either side of the
// category/type pairing is touched the pairing is re-validated against the
// resulting values, inside the same transaction as the update.
func (r *PWDRepo) Update(ctx context.Context, id uint64, p UpdatePWDParams) error {
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

	if p.DisabilityCategoryID != nil || p.DisabilityTypeID != nil {
		var curCat, curType uint64
		err = tx.QueryRowContext(ctx,
			"SELECT disability_category_id, disability_type_id FROM pwd_records WHERE id=? FOR UPDATE",
			id).Scan(&curCat, &curType)
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
			return err
		}
		if err != nil {
			return err
		}
		if p.DisabilityCategoryID != nil {
			curCat = *p.DisabilityCategoryID
		}
		if p.DisabilityTypeID != nil {
			curType = *p.DisabilityTypeID
		}
		var ok bool
		ok, err = r.typePairs(ctx, tx, curType, curCat)
		if err != nil {
			return err
		}
		if !ok {
			err = ErrCategoryTypeMismatch
			return err
		}
	}

	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if p.Quarter != nil {
		add("quarter", *p.Quarter)
	}
	if p.Year != nil {
		add("year", *p.Year)
	}
	if p.FullName != nil {
		add("full_name", *p.FullName)
	}
	if p.Gender != nil {
		add("gender", *p.Gender)
	}
	if p.Phone != nil {
		add("phone", *p.Phone)
	}
	if p.Email != nil {
		add("email", *p.Email)
	}
	if p.Address != nil {
		add("address", *p.Address)
	}
	if p.DisabilityCategoryID != nil {
		add("disability_category_id", *p.DisabilityCategoryID)
	}
	if p.DisabilityTypeID != nil {
		add("disability_type_id", *p.DisabilityTypeID)
	}
	if p.CommunityID != nil {
		add("community_id", *p.CommunityID)
	}
	if p.AssistanceTypeNeededID != nil {
		add("assistance_type_needed_id", *p.AssistanceTypeNeededID)
	}
	if p.SupportDescription != nil {
		add("support_description", *p.SupportDescription)
	}
	if p.SupportingDocuments != nil {
		add("supporting_documents", *p.SupportingDocuments)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	var res sql.Result
	res, err = tx.ExecContext(ctx,
		"UPDATE pwd_records SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	// The pool connects with clientFoundRows, so zero means no matching row
	// rather than an update that changed nothing.
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrNotFound
	}
	return err
}

// UpdateStatus records the new review status. Validation of the enum value
// and the admin-only gate live in the handler layer.
func (r *PWDRepo) UpdateStatus(ctx context.Context, id uint64, status model.RecordStatus) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE pwd_records SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record and cascades its satellite rows (guardian,
// education, support needs) in one transaction. Deletion is rejected with a
// Conflict while assistance requests still reference the record; requests
// carry financial history and must be removed explicitly first.
func (r *PWDRepo) Delete(ctx context.Context, id uint64) error {
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
		{"assistance_requests", "beneficiary_id"},
	})
	if err != nil {
		return err
	}
	for _, table := range []string{"guardians", "educations", "support_needs"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE pwd_id=?", id); err != nil {
			return err
		}
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM pwd_records WHERE id=?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrNotFound
	}
	return err
}

// Totals is the dashboard summary over the whole registry.
type Totals struct {
	TotalRecords          int64 `json:"total_records"`
	CurrentQuarter        int64 `json:"registered_this_quarter"`
	AssessedBeneficiaries int64 `json:"assessed_beneficiaries"`
}

// CountTotals returns the registry-wide totals: all records, records created
// in the current calendar quarter/year, and distinct beneficiaries holding
// at least one assessed assistance request.
func (r *PWDRepo) CountTotals(ctx context.Context) (Totals, error) {
	var t Totals
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pwd_records").Scan(&t.TotalRecords); err != nil {
		return t, err
	}
	now := time.Now().UTC()
	quarter := model.QuarterOfMonth(int(now.Month()))
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pwd_records WHERE quarter=? AND year=?",
		quarter, now.Year()).Scan(&t.CurrentQuarter); err != nil {
		return t, err
	}
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT beneficiary_id) FROM assistance_requests WHERE status=?",
		model.RequestAssessed).Scan(&t.AssessedBeneficiaries); err != nil {
		return t, err
	}
	return t, nil
}

// typePairs checks the type/category pairing using whichever handle (pool
// or transaction) the caller is operating on.
func (r *PWDRepo) typePairs(ctx context.Context, q rowQuerier, typeID, categoryID uint64) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM disability_types WHERE id=? AND category_id=?",
		typeID, categoryID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
