package web

import (
	"net/http"
	"strconv"
	"time"

	"gallerydesk/internal/core"
)

// handleReport computes the commission summary for the selected month and
// year. Missing parameters fall back to the default period: the month prior
// to the current one.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	period := core.DefaultPeriod(time.Now())

	if v := r.URL.Query().Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			writeError(w, http.StatusBadRequest, "month must be 1-12")
			return
		}
		period.Month = month
	}
	if v := r.URL.Query().Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		period.Year = year
	}

	summary := core.Summarize(s.store.Artists(), s.store.Sales(), period)
	writeJSON(w, summary)
}

// handleReportPeriods returns the selectable months and years plus the
// default selection for the report picker.
func (s *Server) handleReportPeriods(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	writeJSON(w, map[string]any{
		"months":  core.MonthNames(),
		"years":   core.ReportYears(now),
		"default": core.DefaultPeriod(now),
	})
}
