package model

import "dansebakken_backend/internals/helpers/csvstore"

// SheetHeaders is the Feedback tab layout, identical to the CSV fallback.
var SheetHeaders = csvstore.FeedbackHeaders

// FeedbackRecord is one feedback submission. Write-once.
type FeedbackRecord struct {
	Timestamp string
	Anonymous bool
	Name      string // blank when anonymous
	Email     string // blank when anonymous
	Feedback  string
}

// Row serializes the record in SheetHeaders order.
func (r FeedbackRecord) Row() []string {
	anon := "no"
	if r.Anonymous {
		anon = "yes"
	}
	return []string{r.Timestamp, anon, r.Name, r.Email, r.Feedback}
}
