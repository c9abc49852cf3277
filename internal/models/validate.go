package models

import (
	"fmt"
	"strings"

	"boilerInspector/internal/catalog"
)

// InvalidRecordError lists what is wrong with a record that did not come
// from the form, such as one read from a backup file.
type InvalidRecordError struct {
	ID       string
	Problems []string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record %s: %s", e.ID, strings.Join(e.Problems, "; "))
}

// Validate checks the rules the form enforces before a record is stored:
// required fields present, a known result, catalog products with a count
// of at least one and YES/NO answers keyed by checklist item ids.
func (r InspectionRecord) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(r.ID) == "" {
		add("id is empty")
	}
	if r.InspectionDate.IsZero() {
		add("inspection_date is empty")
	}
	if strings.TrimSpace(r.Inspector) == "" {
		add("inspector is empty")
	}
	if strings.TrimSpace(r.SiteName) == "" {
		add("site_name is empty")
	}
	if strings.TrimSpace(r.Address) == "" {
		add("address is empty")
	}
	if !r.Result.Valid() {
		add("unknown result %q", r.Result)
	}
	for _, p := range r.Products {
		if !catalog.IsProduct(p.Name) {
			add("unknown product %q", p.Name)
		}
		if p.Count < 1 {
			add("product %s has count %d", p.Name, p.Count)
		}
	}
	for id, a := range r.ChecklistAnswers {
		if !catalog.IsChecklistItem(id) {
			add("unknown checklist item %q", id)
		}
		if a.Answer != AnswerYes && a.Answer != AnswerNo {
			add("checklist item %s has answer %q", id, a.Answer)
		}
	}

	if len(problems) > 0 {
		return &InvalidRecordError{ID: r.ID, Problems: problems}
	}
	return nil
}
