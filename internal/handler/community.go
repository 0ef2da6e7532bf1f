package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/repository"
)

// CommunityHandler covers the communities lookup resource. Reads are open
// to any authenticated user; writes are admin-only (enforced in routing).
type CommunityHandler struct {
	Communities *repository.CommunityRepo
}

func NewCommunityHandler(r *repository.CommunityRepo) *CommunityHandler {
	return &CommunityHandler{Communities: r}
}

// List handles GET /v1/communities/list.
func (h *CommunityHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Communities.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list communities")
	}
	return success(c, http.StatusOK, echo.Map{"communities": items})
}

// Get handles GET /v1/communities/:id.
func (h *CommunityHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	item, err := h.Communities.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "community not found")
	}
	return success(c, http.StatusOK, item)
}

// Create handles POST /v1/communities (admin).
func (h *CommunityHandler) Create(c echo.Context) error {
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

	id, err := h.Communities.Create(ctx, name)
	if err != nil {
		if err == repository.ErrConflict {
			return fail(c, http.StatusConflict, "community name already exists")
		}
		return repoError(c, err, "community not found")
	}
	return success(c, http.StatusCreated, echo.Map{"id": id, "name": name})
}

// Update handles PATCH /v1/communities/:id (admin).
func (h *CommunityHandler) Update(c echo.Context) error {
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

	if err := h.Communities.Update(ctx, id, name); err != nil {
		if err == repository.ErrConflict {
			return fail(c, http.StatusConflict, "community name already exists")
		}
		return repoError(c, err, "community not found")
	}
	return successMsg(c, http.StatusOK, "community updated", nil)
}

// Delete handles DELETE /v1/communities/:id (admin). Rejected with Conflict
// while PWD records still reference the community.
func (h *CommunityHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Communities.Delete(ctx, id); err != nil {
		return repoError(c, err, "community not found")
	}
	return successMsg(c, http.StatusOK, "community deleted", nil)
}
