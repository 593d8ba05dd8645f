package ingest

import "time"

// dateLayout is the compact form dates arrive in (CLI argument, scheduler
// execution date). isoLayout is the form the extract and the sale table use.
const (
	dateLayout = "20060102"
	isoLayout  = "2006-01-02"
)

// ValidateDate reports whether s is exactly 8 ASCII digits forming a real
// calendar date in YYYYMMDD form. It never panics and has no side effects;
// impossible dates like 20230230 are rejected.
func ValidateDate(s string) bool {
	if len(s) != 8 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	// time.Parse rejects impossible components ("day out of range"),
	// so 20230230 fails here.
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// FormatDate converts a YYYYMMDD date to its YYYY-MM-DD form.
// The input must already have passed ValidateDate.
func FormatDate(s string) string {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return ""
	}
	return t.Format(isoLayout)
}
