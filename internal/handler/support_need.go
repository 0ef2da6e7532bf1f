package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/model"
	"github.com/welfarelink/pwd-records-api/internal/repository"
)

// SupportNeedHandler covers the support-needs satellite of a PWD record.
type SupportNeedHandler struct {
	Needs *repository.SupportNeedRepo
}

func NewSupportNeedHandler(r *repository.SupportNeedRepo) *SupportNeedHandler {
	return &SupportNeedHandler{Needs: r}
}

// ListByPWD handles GET /v1/support-needs/pwd/:pwd_id.
func (h *SupportNeedHandler) ListByPWD(c echo.Context) error {
	pwdID, ok := pathID(c, "pwd_id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid pwd_id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Needs.ListByPWD(ctx, pwdID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list support needs")
	}
	return success(c, http.StatusOK, echo.Map{"support_needs": items})
}

// Create handles POST /v1/support-needs. A record may carry any number of
// support-need rows.
func (h *SupportNeedHandler) Create(c echo.Context) error {
	var req struct {
		PWDID uint64 `json:"pwd_id"`
		Need  string `json:"need"`
		Notes string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	need, okNeed := trimmed(req.Need)
	if req.PWDID == 0 || !okNeed {
		return fail(c, http.StatusBadRequest, "pwd_id and need are required")
	}

	s := model.SupportNeed{PWDID: req.PWDID, Need: need, Notes: req.Notes}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Needs.Create(ctx, &s); err != nil {
		return repoError(c, err, "record not found")
	}
	return success(c, http.StatusCreated, s)
}

// Update handles PATCH /v1/support-needs/:id.
func (h *SupportNeedHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req struct {
		Need  *string `json:"need"`
		Notes *string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	p := repository.UpdateSupportNeedParams{Need: req.Need, Notes: req.Notes}
	if err := h.Needs.Update(ctx, id, p); err != nil {
		return repoError(c, err, "support need not found")
	}
	return successMsg(c, http.StatusOK, "support need updated", nil)
}

// Delete handles DELETE /v1/support-needs/:id (admin).
func (h *SupportNeedHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Needs.Delete(ctx, id); err != nil {
		return repoError(c, err, "support need not found")
	}
	return successMsg(c, http.StatusOK, "support need deleted", nil)
}
