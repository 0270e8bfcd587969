package core

// validate.go classifies raw imported rows as valid or invalid for a target
// record kind. Validators are pure: they never touch the store, and every
// failure is a result value rather than a panic, so the import pipeline can
// implement all-or-nothing semantics with a plain early exit.

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Reason is a machine-readable failure category for a rejected row or import.
type Reason string

const (
	ReasonMissingField  Reason = "missing_field"
	ReasonInvalidNumber Reason = "invalid_number"
	ReasonOutOfRange    Reason = "out_of_range"
	ReasonInvalidEnum   Reason = "invalid_enum"
	ReasonInvalidDate   Reason = "invalid_date"
	ReasonEmptyImport   Reason = "empty_import"
	ReasonFileRead      Reason = "file_read_error"
)

// RowError describes why a record was rejected. Row is the 1-based data row
// number of the originating record, or 0 for failures that are not
// row-scoped (empty imports, unreadable files).
type RowError struct {
	Row    int
	Reason Reason
	Field  string
	Detail string
}

func (e *RowError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, e.Detail)
	}
	return e.Detail
}

func rowErr(row int, reason Reason, field, detail string) error {
	return &RowError{Row: row, Reason: reason, Field: field, Detail: detail}
}

// Accepted date forms, tried in this order. Whichever pattern matches is
// used to construct the calendar date.
var (
	isoDateRe = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	usDateRe  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// NormalizeDate parses a date in YYYY-MM-DD or M/D/YYYY form and returns the
// canonical YYYY-MM-DD representation. Returns false if neither pattern
// matches or the components do not form a real calendar date.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)

	var year, month, day int
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[3])
	} else if m := usDateRe.FindStringSubmatch(s); m != nil {
		month, _ = strconv.Atoi(m[1])
		day, _ = strconv.Atoi(m[2])
		year, _ = strconv.Atoi(m[3])
	} else {
		return "", false
	}

	if !validCalendarDate(year, month, day) {
		return "", false
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

func validCalendarDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= daysInMonth(year, month)
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	}
	// February
	leap := year%4 == 0 && (year%100 != 0 || year%400 == 0)
	if leap {
		return 29
	}
	return 28
}

// parseFinite parses a decimal number, rejecting NaN and infinities.
func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ValidateArtistRow validates one raw artist record. On success the returned
// Artist has FullName synthesized as "First Last" and Email carried through
// verbatim (empty when absent).
func ValidateArtistRow(rowNum int, row Row) (Artist, error) {
	code := strings.TrimSpace(row["artistcode"])
	if code == "" {
		return Artist{}, rowErr(rowNum, ReasonMissingField, "artistcode", "Artist Code is required")
	}

	first := strings.TrimSpace(row["firstname"])
	last := strings.TrimSpace(row["lastname"])
	if first == "" {
		return Artist{}, rowErr(rowNum, ReasonMissingField, "firstname", "First name and last name are required")
	}
	if last == "" {
		return Artist{}, rowErr(rowNum, ReasonMissingField, "lastname", "First name and last name are required")
	}

	rate, ok := parseFinite(row["commissionrate"])
	if !ok {
		return Artist{}, rowErr(rowNum, ReasonInvalidNumber, "commissionrate", "Commission rate must be a valid number")
	}
	if rate < 0 || rate > 1 {
		return Artist{}, rowErr(rowNum, ReasonOutOfRange, "commissionrate", "Commission rate must be between 0 and 1")
	}

	class := Classification(row["classification"])
	if !class.Valid() {
		return Artist{}, rowErr(rowNum, ReasonInvalidEnum, "classification", "Invalid classification")
	}

	return Artist{
		ArtistCode:     code,
		FirstName:      first,
		LastName:       last,
		FullName:       first + " " + last,
		CommissionRate: rate,
		Email:          strings.TrimSpace(row["email"]),
		Classification: class,
	}, nil
}

// ValidateSaleRow validates one raw sale record. A qty or grosssales of
// literal "0" is a present value, not a missing one. The sale's date is
// re-serialized to canonical YYYY-MM-DD regardless of input form. SalesID is
// left at zero; the store assigns ids on insert.
func ValidateSaleRow(rowNum int, row Row) (Sale, error) {
	if strings.TrimSpace(row["date"]) == "" {
		return Sale{}, rowErr(rowNum, ReasonMissingField, "date", "Date is required")
	}
	code := strings.TrimSpace(row["artistcode"])
	if code == "" {
		return Sale{}, rowErr(rowNum, ReasonMissingField, "artistcode", "Artist Code is required")
	}
	if strings.TrimSpace(row["qty"]) == "" {
		return Sale{}, rowErr(rowNum, ReasonMissingField, "qty", "Quantity is required")
	}
	if strings.TrimSpace(row["grosssales"]) == "" {
		return Sale{}, rowErr(rowNum, ReasonMissingField, "grosssales", "Gross Sales is required")
	}

	qty, err := strconv.Atoi(strings.TrimSpace(row["qty"]))
	if err != nil {
		return Sale{}, rowErr(rowNum, ReasonInvalidNumber, "qty", "Quantity must be a number")
	}

	gross, ok := parseFinite(row["grosssales"])
	if !ok {
		return Sale{}, rowErr(rowNum, ReasonInvalidNumber, "grosssales", "Gross Sales must be a number")
	}

	date, ok := NormalizeDate(row["date"])
	if !ok {
		return Sale{}, rowErr(rowNum, ReasonInvalidDate, "date", "Invalid date format. Expected YYYY-MM-DD or MM/DD/YYYY")
	}

	return Sale{
		Date:           date,
		ArtistCode:     code,
		Qty:            qty,
		PricePointName: strings.TrimSpace(row["pricepointname"]),
		SKU:            strings.TrimSpace(row["sku"]),
		GrossSales:     gross,
		Notes:          strings.TrimSpace(row["notes"]),
	}, nil
}

// ValidateSettingRow validates one raw setting record. Values pass through
// verbatim; no type coercion is applied.
func ValidateSettingRow(rowNum int, row Row) (Setting, error) {
	name := strings.TrimSpace(row["parametername"])
	if name == "" {
		return Setting{}, rowErr(rowNum, ReasonMissingField, "parametername", "Parameter name is required")
	}
	value := row["parametervalue"]
	if strings.TrimSpace(value) == "" {
		return Setting{}, rowErr(rowNum, ReasonMissingField, "parametervalue", "Parameter value is required")
	}

	return Setting{
		ParameterName:  name,
		ParameterValue: value,
		Notes:          row["notes"],
	}, nil
}
