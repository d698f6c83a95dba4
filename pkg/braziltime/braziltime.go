// Package braziltime formats timestamps in the America/Sao_Paulo timezone,
// the format stored in the registry's last_change field.
package braziltime

import "time"

// Layout is the registry timestamp layout (day-month-year).
const Layout = "02-01-2006 15:04:05"

var location *time.Location

func init() {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		loc = time.FixedZone("BRT", -3*60*60)
	}
	location = loc
}

// Now returns the current Sao Paulo time formatted with Layout.
func Now() string {
	return Format(time.Now())
}

// Format renders t in Sao Paulo local time using Layout.
func Format(t time.Time) string {
	return t.In(location).Format(Layout)
}
