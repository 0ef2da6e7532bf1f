package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/model"
	"github.com/welfarelink/pwd-records-api/internal/repository"
)

// StatsHandler serves the derived quarterly and yearly aggregates. The
// routes sit behind the response cache; every figure is recomputed when the
// cache misses.
type StatsHandler struct {
	Stats *repository.StatsRepo
}

func NewStatsHandler(r *repository.StatsRepo) *StatsHandler {
	return &StatsHandler{Stats: r}
}

// Current handles GET /v1/statistics, the aggregate for the running
// calendar quarter.
func (h *StatsHandler) Current(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	now := time.Now().UTC()
	s, err := h.Stats.GetForPeriod(ctx, model.QuarterOfMonth(int(now.Month())), now.Year())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not compute statistics")
	}
	return success(c, http.StatusOK, s)
}

// Quarterly handles GET /v1/statistics/:quarter/:year.
func (h *StatsHandler) Quarterly(c echo.Context) error {
	q, ok := model.ParseQuarter(c.Param("quarter"))
	if !ok {
		return fail(c, http.StatusUnprocessableEntity, "quarter must be one of Q1, Q2, Q3, Q4")
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year <= 0 {
		return fail(c, http.StatusUnprocessableEntity, "year must be a positive number")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	s, err := h.Stats.GetForPeriod(ctx, q, year)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not compute statistics")
	}
	return success(c, http.StatusOK, s)
}

// Yearly handles GET /v1/statistics/yearly.
func (h *StatsHandler) Yearly(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	out, err := h.Stats.GetYearly(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not compute statistics")
	}
	return success(c, http.StatusOK, echo.Map{"years": out})
}

// CurrentYear handles GET /v1/statistics/current-year.
func (h *StatsHandler) CurrentYear(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	out, err := h.Stats.GetCurrentYear(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not compute statistics")
	}
	return success(c, http.StatusOK, out)
}

// Compare handles GET /v1/statistics/compare?years=2023,2024,2025. Years come
// back in the order requested.
func (h *StatsHandler) Compare(c echo.Context) error {
	raw, ok := trimmed(c.QueryParam("years"))
	if !ok {
		return fail(c, http.StatusBadRequest, "years query parameter is required")
	}
	parts := strings.Split(raw, ",")
	if len(parts) > 20 {
		return fail(c, http.StatusUnprocessableEntity, "too many years requested")
	}
	years := make([]int, 0, len(parts))
	for _, p := range parts {
		y, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || y <= 0 {
			return fail(c, http.StatusUnprocessableEntity, "years must be positive numbers")
		}
		years = append(years, y)
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cmp, err := h.Stats.Compare(ctx, years)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not compute statistics")
	}
	return success(c, http.StatusOK, cmp)
}
