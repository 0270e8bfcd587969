package core

// report.go derives the per-artist commission summary for a selected month
// and year. The computation is read-only over the store's current artists
// and sales; nothing is cached between calls.

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SummaryRow is one artist's line in the commission report.
type SummaryRow struct {
	ArtistCode     string  `json:"artistCode"`
	ArtistName     string  `json:"artistName"`
	CommissionRate float64 `json:"commissionRate"`
	GrossSales     float64 `json:"grossSales"`
	Commission     float64 `json:"commission"`
}

// Summary is the commission report for one period.
type Summary struct {
	Period          Period       `json:"period"`
	Rows            []SummaryRow `json:"rows"`
	TotalGross      float64      `json:"totalGrossSales"`
	TotalCommission float64      `json:"totalCommission"`
}

// monthNames in display order, January first.
var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the English name for a 1-based month number.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// MonthNames returns all twelve month names, January first.
func MonthNames() []string {
	out := make([]string, len(monthNames))
	copy(out, monthNames)
	return out
}

// ReportYears returns the selectable report years: the current year and the
// four before it, descending.
func ReportYears(now time.Time) []int {
	years := make([]int, 5)
	for i := range years {
		years[i] = now.Year() - i
	}
	return years
}

// DefaultPeriod returns the initial report selection: the month prior to the
// current calendar month. In January that is December of the prior year.
func DefaultPeriod(now time.Time) Period {
	if now.Month() == time.January {
		return Period{Month: 12, Year: now.Year() - 1}
	}
	return Period{Month: int(now.Month()) - 1, Year: now.Year()}
}

// collator orders artist codes the way a locale-aware string comparison
// would, rather than by raw bytes.
var collator = collate.New(language.AmericanEnglish)

// inPeriod reports whether a canonical YYYY-MM-DD date falls in the period,
// matching on the month and year components only.
func inPeriod(date string, p Period) bool {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return false
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return false
	}
	return year == p.Year && month == p.Month
}

// Summarize computes the commission report for the given period. Artists
// whose summed gross sales for the period is exactly zero are excluded. Rows
// are sorted by artist code ascending using locale-aware collation, and
// grand totals cover the included rows only.
func Summarize(artists []Artist, sales []Sale, p Period) Summary {
	var filtered []Sale
	for _, sale := range sales {
		if inPeriod(sale.Date, p) {
			filtered = append(filtered, sale)
		}
	}

	summary := Summary{Period: p}
	for _, artist := range artists {
		gross := 0.0
		for _, sale := range filtered {
			if sale.ArtistCode == artist.ArtistCode {
				gross += sale.GrossSales
			}
		}
		if gross == 0 {
			continue
		}
		commission := gross * artist.CommissionRate
		summary.Rows = append(summary.Rows, SummaryRow{
			ArtistCode:     artist.ArtistCode,
			ArtistName:     artist.FullName,
			CommissionRate: artist.CommissionRate,
			GrossSales:     gross,
			Commission:     commission,
		})
		summary.TotalGross += gross
		summary.TotalCommission += commission
	}

	sort.Slice(summary.Rows, func(i, j int) bool {
		return collator.CompareString(summary.Rows[i].ArtistCode, summary.Rows[j].ArtistCode) < 0
	})

	return summary
}
