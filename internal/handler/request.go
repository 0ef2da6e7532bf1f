package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/model"
	"github.com/welfarelink/pwd-records-api/internal/repository"
)

// RequestHandler covers assistance requests: filtered listings, per-entity
// views, writes and the admin status workflow.
type RequestHandler struct {
	Requests *repository.RequestRepo
}

func NewRequestHandler(r *repository.RequestRepo) *RequestHandler {
	return &RequestHandler{Requests: r}
}

func (h *RequestHandler) list(c echo.Context, f repository.RequestFilter) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	rows, total, err := h.Requests.List(ctx, f)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list requests")
	}
	return success(c, http.StatusOK, echo.Map{
		"requests":   rows,
		"pagination": model.NewPagination(total, f.Page, f.PerPage),
	})
}

// List handles GET /v1/assistance-requests/list with optional status,
// assistance_type_id, beneficiary_id, requested_by and search filters.
func (h *RequestHandler) List(c echo.Context) error {
	f := repository.RequestFilter{}
	if raw := c.QueryParam("status"); raw != "" {
		s, ok := model.ParseRequestStatus(raw)
		if !ok {
			return fail(c, http.StatusUnprocessableEntity,
				"status must be pending, review, ready_to_access, assessed or declined")
		}
		f.Status = s
	}
	if raw := c.QueryParam("assistance_type_id"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			return fail(c, http.StatusBadRequest, "invalid assistance_type_id")
		}
		f.AssistanceTypeID = id
	}
	if raw := c.QueryParam("beneficiary_id"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			return fail(c, http.StatusBadRequest, "invalid beneficiary_id")
		}
		f.BeneficiaryID = id
	}
	if raw := c.QueryParam("requested_by"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			return fail(c, http.StatusBadRequest, "invalid requested_by")
		}
		f.RequestedBy = id
	}
	f.Search, _ = trimmed(c.QueryParam("search"))
	f.Page, f.PerPage = pageParams(c)
	return h.list(c, f)
}

// ListByStatus handles GET /v1/assistance-requests/status/:status.
func (h *RequestHandler) ListByStatus(c echo.Context) error {
	s, ok := model.ParseRequestStatus(c.Param("status"))
	if !ok {
		return fail(c, http.StatusUnprocessableEntity,
			"status must be pending, review, ready_to_access, assessed or declined")
	}
	page, perPage := pageParams(c)
	return h.list(c, repository.RequestFilter{Status: s, Page: page, PerPage: perPage})
}

// ListByBeneficiary handles GET /v1/assistance-requests/beneficiary/:id.
func (h *RequestHandler) ListByBeneficiary(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	page, perPage := pageParams(c)
	return h.list(c, repository.RequestFilter{BeneficiaryID: id, Page: page, PerPage: perPage})
}

// ListByUser handles GET /v1/assistance-requests/user/:id, the requests
// raised by one user.
func (h *RequestHandler) ListByUser(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	page, perPage := pageParams(c)
	return h.list(c, repository.RequestFilter{RequestedBy: id, Page: page, PerPage: perPage})
}

// ListMine handles GET /v1/assistance-requests/my-requests for the
// authenticated user.
func (h *RequestHandler) ListMine(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	page, perPage := pageParams(c)
	return h.list(c, repository.RequestFilter{RequestedBy: uid, Page: page, PerPage: perPage})
}

// Get handles GET /v1/assistance-requests/:id.
func (h *RequestHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	d, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "request not found")
	}
	return success(c, http.StatusOK, d)
}

// Create handles POST /v1/assistance-requests. The request is raised by the
// authenticated user with status pending.
func (h *RequestHandler) Create(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req struct {
		AssistanceTypeID uint64  `json:"assistance_type_id"`
		BeneficiaryID    uint64  `json:"beneficiary_id"`
		Description      string  `json:"description"`
		Amount           float64 `json:"amount"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.AssistanceTypeID == 0 || req.BeneficiaryID == 0 {
		return fail(c, http.StatusBadRequest, "assistance_type_id and beneficiary_id are required")
	}
	if req.Amount < 0 {
		return fail(c, http.StatusUnprocessableEntity, "amount must not be negative")
	}

	ar := model.AssistanceRequest{
		AssistanceTypeID: req.AssistanceTypeID,
		BeneficiaryID:    req.BeneficiaryID,
		RequestedBy:      uid,
		Description:      req.Description,
		Amount:           req.Amount,
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Requests.Create(ctx, &ar); err != nil {
		return repoError(c, err, "request not found")
	}
	return success(c, http.StatusCreated, echo.Map{
		"id":             ar.ID,
		"beneficiary_id": ar.BeneficiaryID,
		"amount":         ar.Amount,
		"status":         ar.Status,
		"created_at":     ar.CreatedAt,
	})
}

// Update handles PATCH /v1/assistance-requests/:id with partial semantics.
// Status changes go through UpdateStatus, not here.
func (h *RequestHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req struct {
		AssistanceTypeID *uint64  `json:"assistance_type_id"`
		BeneficiaryID    *uint64  `json:"beneficiary_id"`
		Description      *string  `json:"description"`
		Amount           *float64 `json:"amount"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Amount != nil && *req.Amount < 0 {
		return fail(c, http.StatusUnprocessableEntity, "amount must not be negative")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	p := repository.UpdateRequestParams{
		AssistanceTypeID: req.AssistanceTypeID,
		BeneficiaryID:    req.BeneficiaryID,
		Description:      req.Description,
		Amount:           req.Amount,
	}
	if err := h.Requests.Update(ctx, id, p); err != nil {
		return repoError(c, err, "request not found")
	}
	return successMsg(c, http.StatusOK, "request updated", nil)
}

// UpdateStatus handles PATCH /v1/assistance-requests/:id/status (admin).
// admin_notes, when present, replaces the stored review notes.
func (h *RequestHandler) UpdateStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req struct {
		Status     string  `json:"status"`
		AdminNotes *string `json:"admin_notes"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	status, ok := model.ParseRequestStatus(req.Status)
	if !ok {
		return fail(c, http.StatusUnprocessableEntity,
			"status must be pending, review, ready_to_access, assessed or declined")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Requests.UpdateStatus(ctx, id, status, req.AdminNotes); err != nil {
		return repoError(c, err, "request not found")
	}
	return successMsg(c, http.StatusOK, "status updated", echo.Map{"id": id, "status": status})
}

// Delete handles DELETE /v1/assistance-requests/:id (admin).
func (h *RequestHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Requests.Delete(ctx, id); err != nil {
		return repoError(c, err, "request not found")
	}
	return successMsg(c, http.StatusOK, "request deleted", nil)
}
