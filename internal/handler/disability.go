package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/repository"
)

// DisabilityHandler covers the disability category and type lookups.
type DisabilityHandler struct {
	Disabilities *repository.DisabilityRepo
}

func NewDisabilityHandler(r *repository.DisabilityRepo) *DisabilityHandler {
	return &DisabilityHandler{Disabilities: r}
}

// ---- categories ----

// ListCategories handles GET /v1/disability-categories/list.
func (h *DisabilityHandler) ListCategories(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Disabilities.ListCategories(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list disability categories")
	}
	return success(c, http.StatusOK, echo.Map{"categories": items})
}

// GetCategory handles GET /v1/disability-categories/:id.
func (h *DisabilityHandler) GetCategory(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	item, err := h.Disabilities.GetCategory(ctx, id)
	if err != nil {
		return repoError(c, err, "disability category not found")
	}
	return success(c, http.StatusOK, item)
}

// CreateCategory handles POST /v1/disability-categories (admin).
func (h *DisabilityHandler) CreateCategory(c echo.Context) error {
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

	id, err := h.Disabilities.CreateCategory(ctx, name)
	if err != nil {
		if err == repository.ErrConflict {
			return fail(c, http.StatusConflict, "disability category already exists")
		}
		return repoError(c, err, "disability category not found")
	}
	return success(c, http.StatusCreated, echo.Map{"id": id, "name": name})
}

// UpdateCategory handles PATCH /v1/disability-categories/:id (admin).
func (h *DisabilityHandler) UpdateCategory(c echo.Context) error {
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

	if err := h.Disabilities.UpdateCategory(ctx, id, name); err != nil {
		if err == repository.ErrConflict {
			return fail(c, http.StatusConflict, "disability category already exists")
		}
		return repoError(c, err, "disability category not found")
	}
	return successMsg(c, http.StatusOK, "disability category updated", nil)
}

// DeleteCategory handles DELETE /v1/disability-categories/:id (admin).
// Blocked while types or PWD records still reference the category.
func (h *DisabilityHandler) DeleteCategory(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Disabilities.DeleteCategory(ctx, id); err != nil {
		return repoError(c, err, "disability category not found")
	}
	return successMsg(c, http.StatusOK, "disability category deleted", nil)
}

// ---- types ----

// ListTypes handles GET /v1/disability-types/list. An optional ?category_id=
// narrows the listing to one category.
func (h *DisabilityHandler) ListTypes(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	if raw := c.QueryParam("category_id"); raw != "" {
		catID, ok := parseID(raw)
		if !ok {
			return fail(c, http.StatusBadRequest, "invalid category_id")
		}
		items, err := h.Disabilities.ListTypesByCategory(ctx, catID)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "could not list disability types")
		}
		return success(c, http.StatusOK, echo.Map{"types": items})
	}

	items, err := h.Disabilities.ListTypes(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list disability types")
	}
	return success(c, http.StatusOK, echo.Map{"types": items})
}

// ListTypesByCategory handles GET /v1/disability-types/category/:id.
func (h *DisabilityHandler) ListTypesByCategory(c echo.Context) error {
	catID, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Disabilities.GetCategory(ctx, catID); err != nil {
		return repoError(c, err, "disability category not found")
	}
	items, err := h.Disabilities.ListTypesByCategory(ctx, catID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list disability types")
	}
	return success(c, http.StatusOK, echo.Map{"types": items})
}

// GetType handles GET /v1/disability-types/:id.
func (h *DisabilityHandler) GetType(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	item, err := h.Disabilities.GetType(ctx, id)
	if err != nil {
		return repoError(c, err, "disability type not found")
	}
	return success(c, http.StatusOK, item)
}

// CreateType handles POST /v1/disability-types (admin).
func (h *DisabilityHandler) CreateType(c echo.Context) error {
	var req struct {
		CategoryID uint64 `json:"category_id"`
		Name       string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	name, ok := trimmed(req.Name)
	if !ok || req.CategoryID == 0 {
		return fail(c, http.StatusBadRequest, "category_id and name are required")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	id, err := h.Disabilities.CreateType(ctx, req.CategoryID, name)
	if err != nil {
		if err == repository.ErrConflict {
			return fail(c, http.StatusConflict, "disability type already exists")
		}
		return repoError(c, err, "disability category not found")
	}
	return success(c, http.StatusCreated, echo.Map{"id": id, "category_id": req.CategoryID, "name": name})
}

// UpdateType handles PATCH /v1/disability-types/:id (admin).
func (h *DisabilityHandler) UpdateType(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req struct {
		CategoryID *uint64 `json:"category_id"`
		Name       *string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	p := repository.UpdateTypeParams{CategoryID: req.CategoryID, Name: req.Name}
	if err := h.Disabilities.UpdateType(ctx, id, p); err != nil {
		if err == repository.ErrConflict {
			return fail(c, http.StatusConflict, "disability type already exists")
		}
		return repoError(c, err, "disability type not found")
	}
	return successMsg(c, http.StatusOK, "disability type updated", nil)
}

// DeleteType handles DELETE /v1/disability-types/:id (admin).
func (h *DisabilityHandler) DeleteType(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Disabilities.DeleteType(ctx, id); err != nil {
		return repoError(c, err, "disability type not found")
	}
	return successMsg(c, http.StatusOK, "disability type deleted", nil)
}
