package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/model"
	"github.com/welfarelink/pwd-records-api/internal/repository"
)

// PWDHandler covers the core PWD record resource: filtered listings, the
// joined detail view, writes with pairing validation, the review-status
// transition and the dashboard totals.
type PWDHandler struct {
	Records *repository.PWDRepo
}

func NewPWDHandler(r *repository.PWDRepo) *PWDHandler {
	return &PWDHandler{Records: r}
}

// filterFromQuery builds a PWDFilter from the request query string.
// Unknown enum values are rejected rather than silently ignored.
func filterFromQuery(c echo.Context) (repository.PWDFilter, string) {
	f := repository.PWDFilter{}

	if raw := c.QueryParam("quarter"); raw != "" {
		q, ok := model.ParseQuarter(raw)
		if !ok {
			return f, "quarter must be one of Q1, Q2, Q3, Q4"
		}
		f.Quarter = q
	}
	if raw := c.QueryParam("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y <= 0 {
			return f, "year must be a positive number"
		}
		f.Year = y
	}
	if raw := c.QueryParam("status"); raw != "" {
		s, ok := model.ParseRecordStatus(raw)
		if !ok {
			return f, "status must be pending, approved or declined"
		}
		f.Status = s
	}
	if raw := c.QueryParam("community_id"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			return f, "invalid community_id"
		}
		f.CommunityID = id
	}
	if raw := c.QueryParam("category_id"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			return f, "invalid category_id"
		}
		f.CategoryID = id
	}
	f.Search, _ = trimmed(c.QueryParam("search"))
	f.Page, f.PerPage = pageParams(c)
	return f, ""
}

func (h *PWDHandler) list(c echo.Context, f repository.PWDFilter) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	rows, total, err := h.Records.List(ctx, f)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list records")
	}
	return success(c, http.StatusOK, echo.Map{
		"records":    rows,
		"pagination": model.NewPagination(total, f.Page, f.PerPage),
	})
}

// List handles GET /v1/pwd-records/list with optional quarter, year, status,
// community_id, category_id and search filters.
func (h *PWDHandler) List(c echo.Context) error {
	f, msg := filterFromQuery(c)
	if msg != "" {
		return fail(c, http.StatusUnprocessableEntity, msg)
	}
	return h.list(c, f)
}

// ListByQuarter handles GET /v1/pwd-records/quarterly/:quarter/:year.
func (h *PWDHandler) ListByQuarter(c echo.Context) error {
	q, ok := model.ParseQuarter(c.Param("quarter"))
	if !ok {
		return fail(c, http.StatusUnprocessableEntity, "quarter must be one of Q1, Q2, Q3, Q4")
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year <= 0 {
		return fail(c, http.StatusUnprocessableEntity, "year must be a positive number")
	}
	page, perPage := pageParams(c)
	return h.list(c, repository.PWDFilter{Quarter: q, Year: year, Page: page, PerPage: perPage})
}

// ListByCommunity handles GET /v1/pwd-records/community/:id.
func (h *PWDHandler) ListByCommunity(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	page, perPage := pageParams(c)
	return h.list(c, repository.PWDFilter{CommunityID: id, Page: page, PerPage: perPage})
}

// ListByCategory handles GET /v1/pwd-records/category/:id.
func (h *PWDHandler) ListByCategory(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	page, perPage := pageParams(c)
	return h.list(c, repository.PWDFilter{CategoryID: id, Page: page, PerPage: perPage})
}

// Get handles GET /v1/pwd-records/:id, returning the joined detail view.
func (h *PWDHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	d, err := h.Records.GetDetail(ctx, id)
	if err != nil {
		return repoError(c, err, "record not found")
	}
	return success(c, http.StatusOK, d)
}

type pwdCreateReq struct {
	Quarter                string `json:"quarter"`
	Year                   int    `json:"year"`
	FullName               string `json:"full_name"`
	Gender                 string `json:"gender"`
	Phone                  string `json:"phone"`
	Email                  string `json:"email"`
	Address                string `json:"address"`
	DisabilityCategoryID   uint64 `json:"disability_category_id"`
	DisabilityTypeID       uint64 `json:"disability_type_id"`
	CommunityID            uint64 `json:"community_id"`
	AssistanceTypeNeededID uint64 `json:"assistance_type_needed_id"`
	SupportDescription     string `json:"support_description"`
	SupportingDocuments    string `json:"supporting_documents"`
}

// Create handles POST /v1/pwd-records. The record is created under the
// authenticated user with status pending.
func (h *PWDHandler) Create(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req pwdCreateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	fullName, okName := trimmed(req.FullName)
	if !okName {
		return fail(c, http.StatusBadRequest, "full_name is required")
	}
	quarter, ok := model.ParseQuarter(req.Quarter)
	if !ok {
		return fail(c, http.StatusUnprocessableEntity, "quarter must be one of Q1, Q2, Q3, Q4")
	}
	gender, ok := model.ParseGender(req.Gender)
	if !ok {
		return fail(c, http.StatusUnprocessableEntity, "gender must be male, female or other")
	}
	if req.Year <= 0 {
		return fail(c, http.StatusUnprocessableEntity, "year must be a positive number")
	}
	if req.DisabilityCategoryID == 0 || req.DisabilityTypeID == 0 ||
		req.CommunityID == 0 || req.AssistanceTypeNeededID == 0 {
		return fail(c, http.StatusBadRequest,
			"disability_category_id, disability_type_id, community_id and assistance_type_needed_id are required")
	}

	rec := model.PWDRecord{
		UserID:                 uid,
		Quarter:                quarter,
		Year:                   req.Year,
		FullName:               fullName,
		Gender:                 gender,
		Phone:                  req.Phone,
		Email:                  req.Email,
		Address:                req.Address,
		DisabilityCategoryID:   req.DisabilityCategoryID,
		DisabilityTypeID:       req.DisabilityTypeID,
		CommunityID:            req.CommunityID,
		AssistanceTypeNeededID: req.AssistanceTypeNeededID,
		SupportDescription:     req.SupportDescription,
		SupportingDocuments:    req.SupportingDocuments,
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Records.Create(ctx, &rec); err != nil {
		return repoError(c, err, "record not found")
	}
	return success(c, http.StatusCreated, echo.Map{
		"id":         rec.ID,
		"full_name":  rec.FullName,
		"quarter":    rec.Quarter,
		"year":       rec.Year,
		"status":     rec.Status,
		"created_at": rec.CreatedAt,
	})
}

type pwdUpdateReq struct {
	Quarter                *string `json:"quarter"`
	Year                   *int    `json:"year"`
	FullName               *string `json:"full_name"`
	Gender                 *string `json:"gender"`
	Phone                  *string `json:"phone"`
	Email                  *string `json:"email"`
	Address                *string `json:"address"`
	DisabilityCategoryID   *uint64 `json:"disability_category_id"`
	DisabilityTypeID       *uint64 `json:"disability_type_id"`
	CommunityID            *uint64 `json:"community_id"`
	AssistanceTypeNeededID *uint64 `json:"assistance_type_needed_id"`
	SupportDescription     *string `json:"support_description"`
	SupportingDocuments    *string `json:"supporting_documents"`
}

// Update handles PATCH /v1/pwd-records/:id with partial semantics.
func (h *PWDHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req pwdUpdateReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	p := repository.UpdatePWDParams{
		Year:                   req.Year,
		FullName:               req.FullName,
		Phone:                  req.Phone,
		Email:                  req.Email,
		Address:                req.Address,
		DisabilityCategoryID:   req.DisabilityCategoryID,
		DisabilityTypeID:       req.DisabilityTypeID,
		CommunityID:            req.CommunityID,
		AssistanceTypeNeededID: req.AssistanceTypeNeededID,
		SupportDescription:     req.SupportDescription,
		SupportingDocuments:    req.SupportingDocuments,
	}
	if req.Quarter != nil {
		q, ok := model.ParseQuarter(*req.Quarter)
		if !ok {
			return fail(c, http.StatusUnprocessableEntity, "quarter must be one of Q1, Q2, Q3, Q4")
		}
		p.Quarter = &q
	}
	if req.Gender != nil {
		g, ok := model.ParseGender(*req.Gender)
		if !ok {
			return fail(c, http.StatusUnprocessableEntity, "gender must be male, female or other")
		}
		p.Gender = &g
	}
	if req.Year != nil && *req.Year <= 0 {
		return fail(c, http.StatusUnprocessableEntity, "year must be a positive number")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Records.Update(ctx, id, p); err != nil {
		return repoError(c, err, "record not found")
	}
	return successMsg(c, http.StatusOK, "record updated", nil)
}

// UpdateStatus handles PATCH /v1/pwd-records/:id/status (admin review).
func (h *PWDHandler) UpdateStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	status, ok := model.ParseRecordStatus(req.Status)
	if !ok {
		return fail(c, http.StatusUnprocessableEntity, "status must be pending, approved or declined")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Records.UpdateStatus(ctx, id, status); err != nil {
		return repoError(c, err, "record not found")
	}
	return successMsg(c, http.StatusOK, "status updated", echo.Map{"id": id, "status": status})
}

// Delete handles DELETE /v1/pwd-records/:id (admin). Satellite rows cascade;
// deletion is blocked while assistance requests reference the record.
func (h *PWDHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Records.Delete(ctx, id); err != nil {
		return repoError(c, err, "record not found")
	}
	return successMsg(c, http.StatusOK, "record deleted", nil)
}

// Totals handles GET /v1/pwd-records/totals, the dashboard summary.
func (h *PWDHandler) Totals(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	t, err := h.Records.CountTotals(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not compute totals")
	}
	return success(c, http.StatusOK, t)
}
