package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/welfarelink/pwd-records-api/internal/model"
)

// StatsRepo derives quarterly and yearly aggregates over pwd_records and
// assistance_requests. Nothing here is persisted; every figure is computed
// on read. A beneficiary counts as "assessed" for the period in which they
// were registered, regardless of when the assessed request was raised.
type StatsRepo struct{ DB *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{DB: db} }

// QuarterlyStat is the aggregate for one (quarter, year) key. Pending is
// registered minus assessed and is non-negative by construction, since the
// assessed count only covers beneficiaries registered in the same period.
type QuarterlyStat struct {
	Quarter         model.Quarter `json:"quarter"`
	Year            int           `json:"year"`
	TotalRegistered int64         `json:"total_registered_pwd"`
	TotalAssessed   int64         `json:"total_assessed"`
	Pending         int64         `json:"pending"`
}

// YearlyStat is the aggregate for one calendar year across all quarters.
type YearlyStat struct {
	Year            int   `json:"year"`
	TotalRegistered int64 `json:"total_registered_pwd"`
	TotalAssessed   int64 `json:"total_assessed"`
	Pending         int64 `json:"pending"`
}

// GetForPeriod computes the aggregate for one quarter of one year.
func (r *StatsRepo) GetForPeriod(ctx context.Context, quarter model.Quarter, year int) (QuarterlyStat, error) {
	s := QuarterlyStat{Quarter: quarter, Year: year}
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pwd_records WHERE quarter=? AND year=?",
		quarter, year).Scan(&s.TotalRegistered); err != nil {
		return s, err
	}
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT ar.beneficiary_id)
		 FROM assistance_requests ar
		 JOIN pwd_records p ON p.id = ar.beneficiary_id
		 WHERE ar.status=? AND p.quarter=? AND p.year=?`,
		model.RequestAssessed, quarter, year).Scan(&s.TotalAssessed); err != nil {
		return s, err
	}
	s.Pending = s.TotalRegistered - s.TotalAssessed
	return s, nil
}

// GetYearly groups the aggregates by year across all quarters, ordered by
// year ascending.
func (r *StatsRepo) GetYearly(ctx context.Context) ([]YearlyStat, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT year, COUNT(*) FROM pwd_records GROUP BY year ORDER BY year ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []YearlyStat{}
	index := map[int]int{}
	for rows.Next() {
		var y YearlyStat
		if err := rows.Scan(&y.Year, &y.TotalRegistered); err != nil {
			return nil, err
		}
		index[y.Year] = len(out)
		out = append(out, y)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	arows, err := r.DB.QueryContext(ctx,
		`SELECT p.year, COUNT(DISTINCT ar.beneficiary_id)
		 FROM assistance_requests ar
		 JOIN pwd_records p ON p.id = ar.beneficiary_id
		 WHERE ar.status=?
		 GROUP BY p.year`, model.RequestAssessed)
	if err != nil {
		return nil, err
	}
	defer arows.Close()

	for arows.Next() {
		var year int
		var assessed int64
		if err := arows.Scan(&year, &assessed); err != nil {
			return nil, err
		}
		if i, ok := index[year]; ok {
			out[i].TotalAssessed = assessed
		}
	}
	if err := arows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].Pending = out[i].TotalRegistered - out[i].TotalAssessed
	}
	return out, nil
}

// CurrentYearStats bundles the per-quarter breakdown with the yearly total
// for the running calendar year.
type CurrentYearStats struct {
	Year     int             `json:"year"`
	Quarters []QuarterlyStat `json:"quarters"`
	Total    YearlyStat      `json:"total"`
}

// GetCurrentYear returns all four quarters of the current year plus their
// sum. Quarters with no data come back zero-filled, not omitted.
func (r *StatsRepo) GetCurrentYear(ctx context.Context) (CurrentYearStats, error) {
	year := time.Now().UTC().Year()
	out := CurrentYearStats{Year: year, Total: YearlyStat{Year: year}}
	for _, q := range []model.Quarter{model.Q1, model.Q2, model.Q3, model.Q4} {
		s, err := r.GetForPeriod(ctx, q, year)
		if err != nil {
			return out, err
		}
		out.Quarters = append(out.Quarters, s)
		out.Total.TotalRegistered += s.TotalRegistered
		out.Total.TotalAssessed += s.TotalAssessed
	}
	out.Total.Pending = out.Total.TotalRegistered - out.Total.TotalAssessed
	return out, nil
}

// Comparison holds parallel arrays for a multi-year comparison. Entry i of
// every slice corresponds to Years[i], preserving the caller's order and
// zero-filling years with no data.
type Comparison struct {
	Years           []int   `json:"years"`
	TotalRegistered []int64 `json:"total_registered_pwd"`
	TotalAssessed   []int64 `json:"total_assessed"`
	Pending         []int64 `json:"pending"`
}

// Compare computes the yearly aggregates for each requested year in the
// order given. Caller input is neither deduplicated nor reordered.
func (r *StatsRepo) Compare(ctx context.Context, years []int) (Comparison, error) {
	cmp := Comparison{
		Years:           years,
		TotalRegistered: make([]int64, len(years)),
		TotalAssessed:   make([]int64, len(years)),
		Pending:         make([]int64, len(years)),
	}
	for i, year := range years {
		var registered int64
		if err := r.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM pwd_records WHERE year=?", year).Scan(&registered); err != nil {
			return cmp, err
		}
		var assessed int64
		if err := r.DB.QueryRowContext(ctx,
			`SELECT COUNT(DISTINCT ar.beneficiary_id)
			 FROM assistance_requests ar
			 JOIN pwd_records p ON p.id = ar.beneficiary_id
			 WHERE ar.status=? AND p.year=?`,
			model.RequestAssessed, year).Scan(&assessed); err != nil {
			return cmp, err
		}
		cmp.TotalRegistered[i] = registered
		cmp.TotalAssessed[i] = assessed
		cmp.Pending[i] = registered - assessed
	}
	return cmp, nil
}
