// Package inspection turns form input into committed inspection records.
//
// A Draft is an immutable value: every With* method returns a new Draft and
// leaves the receiver untouched, so a form can keep the previous state for
// undo or comparison. Build validates the draft once at submit time.
package inspection

import (
	"strings"
	"time"

	"boilerInspector/internal/catalog"
	"boilerInspector/internal/models"

	"github.com/google/uuid"
)

// Draft is the uncommitted state of one inspection form.
type Draft struct {
	InspectionDate models.Date
	Inspector      string
	SiteName       string
	City           string
	District       string
	Result         models.Result
	Summary        string
	PhotoCount     int

	products []models.ProductLine
	answers  map[string]models.ChecklistAnswer
}

// NewDraft returns an empty draft dated today.
func NewDraft(today time.Time) Draft {
	return Draft{InspectionDate: models.DateOf(today)}
}

// Products returns a copy of the product lines in insertion order.
func (d Draft) Products() []models.ProductLine {
	return append([]models.ProductLine(nil), d.products...)
}

// TotalProducts is the installed unit count the record will carry.
func (d Draft) TotalProducts() int {
	return models.InspectionRecord{Products: d.products}.TotalProducts()
}

// Answer returns the current answer for a checklist item.
func (d Draft) Answer(itemID string) models.ChecklistAnswer {
	return d.answers[itemID]
}

// AnsweredCount is the number of checklist items with a YES or NO answer.
func (d Draft) AnsweredCount() int {
	return len(d.answers)
}

// WithProduct appends a product line. Unknown products and counts below
// one are ignored.
func (d Draft) WithProduct(name string, count int) Draft {
	if !catalog.IsProduct(name) || count < 1 {
		return d
	}
	next := d
	next.products = append(d.Products(), models.ProductLine{Name: name, Count: count})
	return next
}

// WithoutProduct removes the product line at index; out of range is a no-op.
func (d Draft) WithoutProduct(index int) Draft {
	if index < 0 || index >= len(d.products) {
		return d
	}
	next := d
	lines := make([]models.ProductLine, 0, len(d.products)-1)
	lines = append(lines, d.products[:index]...)
	lines = append(lines, d.products[index+1:]...)
	next.products = lines
	return next
}

// WithChecklistAnswer overwrites the answer for itemID. Unknown ids are
// ignored. The reason is only kept for AnswerNo, and AnswerUnset clears
// the item.
func (d Draft) WithChecklistAnswer(itemID string, answer models.Answer, reason string) Draft {
	if !catalog.IsChecklistItem(itemID) {
		return d
	}
	next := d
	next.answers = d.cloneAnswers()
	switch answer {
	case models.AnswerYes:
		next.answers[itemID] = models.ChecklistAnswer{Answer: models.AnswerYes}
	case models.AnswerNo:
		next.answers[itemID] = models.ChecklistAnswer{Answer: models.AnswerNo, Reason: strings.TrimSpace(reason)}
	default:
		delete(next.answers, itemID)
	}
	return next
}

// WithAllAnswersYes replaces every answer with YES.
func (d Draft) WithAllAnswersYes() Draft {
	next := d
	items := catalog.Checklist()
	next.answers = make(map[string]models.ChecklistAnswer, len(items))
	for _, item := range items {
		next.answers[item.ID] = models.ChecklistAnswer{Answer: models.AnswerYes}
	}
	return next
}

func (d Draft) cloneAnswers() map[string]models.ChecklistAnswer {
	answers := make(map[string]models.ChecklistAnswer, len(d.answers)+1)
	for k, v := range d.answers {
		answers[k] = v
	}
	return answers
}

// Missing returns the names of required fields that are still empty.
func (d Draft) Missing() []string {
	var missing []string
	if d.InspectionDate.IsZero() {
		missing = append(missing, FieldInspectionDate)
	}
	if strings.TrimSpace(d.Inspector) == "" {
		missing = append(missing, FieldInspector)
	}
	if strings.TrimSpace(d.SiteName) == "" {
		missing = append(missing, FieldSiteName)
	}
	if strings.TrimSpace(d.City) == "" {
		missing = append(missing, FieldCity)
	}
	if strings.TrimSpace(d.District) == "" {
		missing = append(missing, FieldDistrict)
	}
	if !d.Result.Valid() {
		missing = append(missing, FieldResult)
	}
	return missing
}

// Build validates the draft and returns the record to commit. The record
// gets its id from newID and its creation time from now.
func (d Draft) Build(now time.Time, newID func() string) (models.InspectionRecord, error) {
	if missing := d.Missing(); len(missing) > 0 {
		return models.InspectionRecord{}, &ValidationError{Fields: missing}
	}

	rec := models.InspectionRecord{
		ID:               newID(),
		InspectionDate:   d.InspectionDate,
		Inspector:        strings.TrimSpace(d.Inspector),
		SiteName:         strings.TrimSpace(d.SiteName),
		Address:          strings.TrimSpace(d.City) + " " + strings.TrimSpace(d.District),
		Result:           d.Result,
		Summary:          d.Summary,
		Products:         d.Products(),
		ChecklistAnswers: d.cloneAnswers(),
		PhotoCount:       d.PhotoCount,
		CreatedAt:        now,
	}
	rec.Normalize()
	return rec, nil
}

// NewID returns a time-ordered unique record id.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
