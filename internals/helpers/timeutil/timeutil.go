package timeutil

import "time"

// The site has always written timestamps in Norwegian local time.
const StampLayout = "02.01.2006 15:04"

var oslo *time.Location

func init() {
	loc, err := time.LoadLocation("Europe/Oslo")
	if err != nil {
		// tzdata missing in the container, fall back to whatever local is
		loc = time.Local
	}
	oslo = loc
}

// Stamp formats t the way rows are stored in the sheet and the CSV.
func Stamp(t time.Time) string {
	return t.In(oslo).Format(StampLayout)
}

// ParseStamp is the inverse of Stamp, used by the CSV migration.
func ParseStamp(s string) (time.Time, error) {
	return time.ParseInLocation(StampLayout, s, oslo)
}
