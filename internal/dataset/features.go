package dataset

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Layouts of the export's date and time cells.
const (
	DateLayout     = "2-1-2006"
	TimeLayout     = "15:04:05"
	isoDateLayout  = "2006-01-02"
	isoMonthLayout = "2006-01"
)

// dateTimeLayouts are tried in order when combining a date with a raw time.
var dateTimeLayouts = []string{
	isoDateLayout + " 15:04:05",
	isoDateLayout + " 15:04",
	isoDateLayout + " 15:04:05.999999999",
}

// Derive computes the calendar features of a row from its raw Date and
// Time cells. Cells that fail to parse leave the dependent features unset.
func Derive(rawDate, rawTime string) Features {
	var f Features

	if d, err := time.Parse(DateLayout, strings.TrimSpace(rawDate)); err == nil {
		f.Date = d
		f.HasDate = true
		f.Year = d.Year()
		f.Month = int(d.Month())
		f.YearMonth = d.Format(isoMonthLayout)
		f.Weekday = d.Weekday().String()

		combined := d.Format(isoDateLayout) + " " + strings.TrimSpace(rawTime)
		for _, layout := range dateTimeLayouts {
			if dt, err := time.Parse(layout, combined); err == nil {
				f.DateTime = dt
				f.HasDateTime = true
				break
			}
		}
	}

	if t, err := time.Parse(TimeLayout, strings.TrimSpace(rawTime)); err == nil {
		f.Hour = t.Hour()
		f.HasHour = true
	}

	return f
}

// NormalizeStatus trims a status and converts it to title case so that
// "delivered", "DELIVERED " and "Delivered" compare equal.
func NormalizeStatus(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Title(language.Und).String(s)
}
