// Package summary computes the dashboard figures over the inspection
// history. Everything is recomputed from scratch on each call.
package summary

import (
	"time"

	"boilerInspector/internal/models"
)

// DefaultRecent is how many records the dashboard lists.
const DefaultRecent = 8

type Stats struct {
	Total     int
	ThisMonth int
	Normal    int
	Caution   int
	Defective int
}

// Count returns the number of records with result r.
func (s Stats) Count(r models.Result) int {
	switch r {
	case models.ResultNormal:
		return s.Normal
	case models.ResultCaution:
		return s.Caution
	case models.ResultDefective:
		return s.Defective
	}
	return 0
}

// Summarize counts records overall, in now's calendar month, and per result.
func Summarize(records []models.InspectionRecord, now time.Time) Stats {
	s := Stats{Total: len(records)}
	for _, r := range records {
		if r.InspectionDate.SameMonth(now) {
			s.ThisMonth++
		}
		switch r.Result {
		case models.ResultNormal:
			s.Normal++
		case models.ResultCaution:
			s.Caution++
		case models.ResultDefective:
			s.Defective++
		}
	}
	return s
}

// Recent returns the first n records in store order (newest first).
// n <= 0 selects DefaultRecent.
func Recent(records []models.InspectionRecord, n int) []models.InspectionRecord {
	if n <= 0 {
		n = DefaultRecent
	}
	if n > len(records) {
		n = len(records)
	}
	return records[:n:n]
}
