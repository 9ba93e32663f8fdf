package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"comparador/internal/core"
	"comparador/internal/dataset"
)

// compareResponse is the /api/compare payload: the raw engine result plus
// display-ready strings so the frontend never formats numbers itself.
type compareResponse struct {
	Region     string       `json:"region"`
	Occupation string       `json:"occupation"`
	Reference  string       `json:"reference"`
	Years      []int        `json:"years"`
	Result     *core.Result `json:"result"`
	KPIs       kpiView      `json:"kpis"`
	Table      []tableRow   `json:"table"`
}

// kpiView carries the headline cards.
type kpiView struct {
	SubjectAverageIncome   string `json:"subject_average_income"`
	ReferenceAverageIncome string `json:"reference_average_income"`
	IncomeRatio            string `json:"income_ratio"`
	SubjectPaidRate        string `json:"subject_paid_rate"`
	ReferencePaidRate      string `json:"reference_paid_rate"`
	PaidRateDiff           string `json:"paid_rate_diff"`
	SubjectAverageExempt   string `json:"subject_average_exempt"`
	ReferenceAverageExempt string `json:"reference_average_exempt"`
}

// tableRow is one line of the transparency table: the per-year figures
// behind the charts, already formatted.
type tableRow struct {
	Year          int    `json:"year"`
	Group         string `json:"group"`
	AverageIncome string `json:"average_income"`
	ExemptShare   string `json:"exempt_share"`
	PaidRate      string `json:"paid_rate"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		http.Error(w, "templates unavailable", http.StatusInternalServerError)
		return
	}

	table, _ := s.tables.Table()
	data := map[string]any{
		"ReferenceLabel": s.opts.ReferenceLabel,
		"DefaultRegion":  s.opts.DefaultRegion,
		"Loaded":         table != nil && table.Len() > 0,
	}
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Failed rendering dashboard", "error", err)
	}
}

// handleFilters returns the option lists driving the UI controls. The
// occupations list depends on the chosen region and never contains the
// reference occupation.
func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	table, _ := s.tables.Table()
	if table == nil || table.Len() == 0 {
		writeJSONError(w, http.StatusServiceUnavailable, "dataset not loaded", nil)
		return
	}

	regions := table.Regions()
	region := s.opts.DefaultRegion
	if raw := r.URL.Query().Get("region"); raw != "" {
		resolved, ok := dataset.Resolve(regions, raw)
		if !ok {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown region %q", raw), nil)
			return
		}
		region = resolved
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"regions":        regions,
		"years":          table.Years(),
		"default_region": s.opts.DefaultRegion,
		"region":         region,
		"occupations":    table.Occupations(region, s.opts.ReferenceOccupation),
		"reference":      s.opts.ReferenceLabel,
	})
}

// handleCompare runs the comparison for ?region=&occupation=&years=. Years
// is a comma-separated list; when omitted every available year is used.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	table, gen := s.tables.Table()
	if table == nil || table.Len() == 0 {
		writeJSONError(w, http.StatusServiceUnavailable, "dataset not loaded", nil)
		return
	}

	q := r.URL.Query()

	region, ok := dataset.Resolve(table.Regions(), firstNonEmpty(q.Get("region"), s.opts.DefaultRegion))
	if !ok {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown region %q", q.Get("region")), nil)
		return
	}

	rawOcc := q.Get("occupation")
	if rawOcc == "" {
		writeJSONError(w, http.StatusBadRequest, "occupation parameter is required", nil)
		return
	}
	occupation, ok := dataset.Resolve(table.Occupations(region, s.opts.ReferenceOccupation), rawOcc)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown occupation %q in %s", rawOcc, region), nil)
		return
	}

	years, err := parseYears(q.Get("years"), table.Years())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	key := compareCacheKey(gen, region, occupation, years)
	if cached, hit := s.compareCache.Get(key); hit {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, err := core.Run(table, core.Query{Region: region, Years: years, Occupation: occupation}, core.Options{
		ReferenceOccupation: s.opts.ReferenceOccupation,
		ReferenceLabel:      s.opts.ReferenceLabel,
	})
	if err != nil {
		var empty *core.EmptyResultError
		if errors.As(err, &empty) {
			writeJSONError(w, http.StatusNotFound, empty.Error(), map[string]string{"side": string(empty.Side)})
			return
		}
		slog.ErrorContext(r.Context(), "Comparison failed", "error", err, "region", region, "occupation", occupation)
		writeJSONError(w, http.StatusInternalServerError, "comparison failed", nil)
		return
	}

	resp := &compareResponse{
		Region:     region,
		Occupation: occupation,
		Reference:  s.opts.ReferenceLabel,
		Years:      years,
		Result:     result,
		KPIs: kpiView{
			SubjectAverageIncome:   formatBRL(result.Subject.AverageIncome),
			ReferenceAverageIncome: formatBRL(result.Reference.AverageIncome),
			IncomeRatio:            formatTimes(result.Comparison.IncomeRatio, 1),
			SubjectPaidRate:        formatPct(result.Subject.EffectivePaidRate, 1),
			ReferencePaidRate:      formatPct(result.Reference.EffectivePaidRate, 1),
			PaidRateDiff:           formatPoints(result.Comparison.PaidRateDiffPoints, 1),
			SubjectAverageExempt:   formatBRL(result.Subject.AverageExempt),
			ReferenceAverageExempt: formatBRL(result.Reference.AverageExempt),
		},
		Table: buildTableRows(result.Series),
	}

	s.compareCache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

func buildTableRows(series []core.SeriesEntry) []tableRow {
	rows := make([]tableRow, 0, len(series))
	for _, e := range series {
		rows = append(rows, tableRow{
			Year:          e.Year,
			Group:         e.Group,
			AverageIncome: formatBRL(e.AverageIncome),
			ExemptShare:   formatPct(e.ExemptShare, 1),
			PaidRate:      formatPct(e.EffectivePaidRate, 1),
		})
	}
	return rows
}

// compareCacheKey includes the dataset generation so a reload naturally
// invalidates every cached response.
func compareCacheKey(gen uint64, region, occupation string, years []int) string {
	parts := make([]string, 0, len(years))
	for _, y := range years {
		parts = append(parts, strconv.Itoa(y))
	}
	return fmt.Sprintf("%d|%s|%s|%s", gen, region, occupation, strings.Join(parts, ","))
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
