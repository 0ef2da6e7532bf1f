package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/repository"
)

// AssistanceTypeHandler covers the assistance-types lookup resource.
type AssistanceTypeHandler struct {
	Types *repository.AssistanceTypeRepo
}

func NewAssistanceTypeHandler(r *repository.AssistanceTypeRepo) *AssistanceTypeHandler {
	return &AssistanceTypeHandler{Types: r}
}

// List handles GET /v1/assistance-types/list.
func (h *AssistanceTypeHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Types.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list assistance types")
	}
	return success(c, http.StatusOK, echo.Map{"assistance_types": items})
}

// Get handles GET /v1/assistance-types/:id.
func (h *AssistanceTypeHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	item, err := h.Types.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "assistance type not found")
	}
	return success(c, http.StatusOK, item)
}

// Create handles POST /v1/assistance-types (admin).
func (h *AssistanceTypeHandler) Create(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	name, ok := trimmed(req.Name)
	if !ok {
		return fail(c, http.StatusBadRequest, "name is required")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	id, err := h.Types.Create(ctx, name)
	if err != nil {
		if err == repository.ErrConflict {
			return fail(c, http.StatusConflict, "assistance type already exists")
		}
		return repoError(c, err, "assistance type not found")
	}
	return success(c, http.StatusCreated, echo.Map{"id": id, "name": name})
}

// Update handles PATCH /v1/assistance-types/:id (admin).
func (h *AssistanceTypeHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	name, okName := trimmed(req.Name)
	if !okName {
		return fail(c, http.StatusBadRequest, "name is required")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Types.Update(ctx, id, name); err != nil {
		if err == repository.ErrConflict {
			return fail(c, http.StatusConflict, "assistance type already exists")
		}
		return repoError(c, err, "assistance type not found")
	}
	return successMsg(c, http.StatusOK, "assistance type updated", nil)
}

// Delete handles DELETE /v1/assistance-types/:id (admin).
func (h *AssistanceTypeHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Types.Delete(ctx, id); err != nil {
		return repoError(c, err, "assistance type not found")
	}
	return successMsg(c, http.StatusOK, "assistance type deleted", nil)
}
