package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/config"
	"github.com/welfarelink/pwd-records-api/internal/model"
	"github.com/welfarelink/pwd-records-api/internal/repository"
)

// UserHandler covers user administration. Creation, deletion and role
// changes are admin-only; a user may read and update their own profile.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

type userRow struct {
	ID           uint64     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         model.Role `json:"role"`
	ProfileImage string     `json:"profile_image,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toUserRow(u model.User) userRow {
	return userRow{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}

// Create handles POST /v1/users (admin).
func (h *UserHandler) Create(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	username, okU := trimmed(req.Username)
	email, okE := trimmed(req.Email)
	if !okU || !okE || req.Password == "" {
		return fail(c, http.StatusBadRequest, "username, email and password are required")
	}
	role, ok := model.ParseRole(req.Role)
	if !ok {
		return fail(c, http.StatusUnprocessableEntity, "role must be admin or officer")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	id, err := h.Users.Create(ctx, username, email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrUserExists {
			return fail(c, http.StatusConflict, err.Error())
		}
		return repoError(c, err, "user not found")
	}
	return success(c, http.StatusCreated, echo.Map{"id": id, "username": username, "role": role})
}

// List handles GET /v1/users/list (admin).
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list users")
	}
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, toUserRow(u))
	}
	return success(c, http.StatusOK, echo.Map{"users": rows})
}

// Get handles GET /v1/users/:id (self or admin).
func (h *UserHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	uid, err := currentUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	if uid != id && !isAdmin(c) {
		return fail(c, http.StatusForbidden, "forbidden")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "user not found")
	}
	return success(c, http.StatusOK, toUserRow(u))
}

// Update handles PATCH /v1/users/:id. Only admins may touch another user's
// profile or anyone's role.
func (h *UserHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	uid, err := currentUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	if uid != id && !isAdmin(c) {
		return fail(c, http.StatusForbidden, "forbidden")
	}

	var req struct {
		Username     *string `json:"username"`
		Email        *string `json:"email"`
		ProfileImage *string `json:"profile_image"`
		Role         *string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	p := repository.UpdateUserParams{
		Username:     req.Username,
		Email:        req.Email,
		ProfileImage: req.ProfileImage,
	}
	if req.Role != nil {
		if !isAdmin(c) {
			return fail(c, http.StatusForbidden, "only admins may change roles")
		}
		role, ok := model.ParseRole(*req.Role)
		if !ok {
			return fail(c, http.StatusUnprocessableEntity, "role must be admin or officer")
		}
		p.Role = &role
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Users.Update(ctx, id, p); err != nil {
		if err == repository.ErrUserExists {
			return fail(c, http.StatusConflict, err.Error())
		}
		return repoError(c, err, "user not found")
	}
	return successMsg(c, http.StatusOK, "user updated", nil)
}

// Delete handles DELETE /v1/users/:id (admin). Blocked while the user is
// referenced as record creator or request requester.
func (h *UserHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		return repoError(c, err, "user not found")
	}
	return successMsg(c, http.StatusOK, "user deleted", nil)
}
