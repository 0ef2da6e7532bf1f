package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/model"
	"github.com/welfarelink/pwd-records-api/internal/repository"
)

// GuardianHandler covers the guardian satellite of a PWD record.
type GuardianHandler struct {
	Guardians *repository.GuardianRepo
}

func NewGuardianHandler(r *repository.GuardianRepo) *GuardianHandler {
	return &GuardianHandler{Guardians: r}
}

// GetByPWD handles GET /v1/guardians/pwd/:pwd_id.
func (h *GuardianHandler) GetByPWD(c echo.Context) error {
	pwdID, ok := pathID(c, "pwd_id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid pwd_id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	g, err := h.Guardians.GetByPWD(ctx, pwdID)
	if err != nil {
		return repoError(c, err, "guardian not found")
	}
	return success(c, http.StatusOK, g)
}

// Create handles POST /v1/guardians. A record may have only one guardian;
// a second create answers with Conflict.
func (h *GuardianHandler) Create(c echo.Context) error {
	var req struct {
		PWDID        uint64 `json:"pwd_id"`
		FullName     string `json:"full_name"`
		Relationship string `json:"relationship"`
		Phone        string `json:"phone"`
		Address      string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	fullName, okName := trimmed(req.FullName)
	if req.PWDID == 0 || !okName {
		return fail(c, http.StatusBadRequest, "pwd_id and full_name are required")
	}

	g := model.Guardian{
		PWDID:        req.PWDID,
		FullName:     fullName,
		Relationship: req.Relationship,
		Phone:        req.Phone,
		Address:      req.Address,
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Guardians.Create(ctx, &g); err != nil {
		if err == repository.ErrConflict {
			return fail(c, http.StatusConflict, "record already has a guardian")
		}
		return repoError(c, err, "record not found")
	}
	return success(c, http.StatusCreated, g)
}

// Update handles PATCH /v1/guardians/:id.
func (h *GuardianHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req struct {
		FullName     *string `json:"full_name"`
		Relationship *string `json:"relationship"`
		Phone        *string `json:"phone"`
		Address      *string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	p := repository.UpdateGuardianParams{
		FullName:     req.FullName,
		Relationship: req.Relationship,
		Phone:        req.Phone,
		Address:      req.Address,
	}
	if err := h.Guardians.Update(ctx, id, p); err != nil {
		return repoError(c, err, "guardian not found")
	}
	return successMsg(c, http.StatusOK, "guardian updated", nil)
}

// Delete handles DELETE /v1/guardians/:id (admin).
func (h *GuardianHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Guardians.Delete(ctx, id); err != nil {
		return repoError(c, err, "guardian not found")
	}
	return successMsg(c, http.StatusOK, "guardian deleted", nil)
}
