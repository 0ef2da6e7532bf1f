package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/model"
	"github.com/welfarelink/pwd-records-api/internal/repository"
)

// EducationHandler covers the education satellite of a PWD record.
type EducationHandler struct {
	Educations *repository.EducationRepo
}

func NewEducationHandler(r *repository.EducationRepo) *EducationHandler {
	return &EducationHandler{Educations: r}
}

// GetByPWD handles GET /v1/educations/pwd/:pwd_id.
func (h *EducationHandler) GetByPWD(c echo.Context) error {
	pwdID, ok := pathID(c, "pwd_id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid pwd_id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	e, err := h.Educations.GetByPWD(ctx, pwdID)
	if err != nil {
		return repoError(c, err, "education record not found")
	}
	return success(c, http.StatusOK, e)
}

// Create handles POST /v1/educations. One education row per record; a second
// create answers with Conflict.
func (h *EducationHandler) Create(c echo.Context) error {
	var req struct {
		PWDID      uint64 `json:"pwd_id"`
		Level      string `json:"level"`
		SchoolName string `json:"school_name"`
		YearEnded  string `json:"year_ended"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	level, okLevel := trimmed(req.Level)
	if req.PWDID == 0 || !okLevel {
		return fail(c, http.StatusBadRequest, "pwd_id and level are required")
	}

	e := model.Education{
		PWDID:      req.PWDID,
		Level:      level,
		SchoolName: req.SchoolName,
		YearEnded:  req.YearEnded,
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Educations.Create(ctx, &e); err != nil {
		if err == repository.ErrConflict {
			return fail(c, http.StatusConflict, "record already has an education entry")
		}
		return repoError(c, err, "record not found")
	}
	return success(c, http.StatusCreated, e)
}

// Update handles PATCH /v1/educations/:id.
func (h *EducationHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req struct {
		Level      *string `json:"level"`
		SchoolName *string `json:"school_name"`
		YearEnded  *string `json:"year_ended"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	p := repository.UpdateEducationParams{
		Level:      req.Level,
		SchoolName: req.SchoolName,
		YearEnded:  req.YearEnded,
	}
	if err := h.Educations.Update(ctx, id, p); err != nil {
		return repoError(c, err, "education record not found")
	}
	return successMsg(c, http.StatusOK, "education record updated", nil)
}

// Delete handles DELETE /v1/educations/:id (admin).
func (h *EducationHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Educations.Delete(ctx, id); err != nil {
		return repoError(c, err, "education record not found")
	}
	return successMsg(c, http.StatusOK, "education record deleted", nil)
}
