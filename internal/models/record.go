package models

import (
	"strings"
	"time"
)

// Result is the overall verdict of an inspection.
type Result string

const (
	ResultNormal    Result = "정상"
	ResultCaution   Result = "주의"
	ResultDefective Result = "불량"
)

// Results lists the valid verdicts in display order.
var Results = []Result{ResultNormal, ResultCaution, ResultDefective}

// Valid reports whether r is one of the three verdicts.
func (r Result) Valid() bool {
	switch r {
	case ResultNormal, ResultCaution, ResultDefective:
		return true
	}
	return false
}

// ParseResult accepts a verdict label or its English name.
func ParseResult(s string) (Result, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ResultNormal), "normal":
		return ResultNormal, true
	case string(ResultCaution), "caution":
		return ResultCaution, true
	case string(ResultDefective), "defective":
		return ResultDefective, true
	}
	return "", false
}

// Answer is the response to one checklist item.
type Answer string

const (
	AnswerUnset Answer = ""
	AnswerYes   Answer = "yes"
	AnswerNo    Answer = "no"
)

// ChecklistAnswer is stored per checklist item id. Reason is only kept
// for AnswerNo.
type ChecklistAnswer struct {
	Answer Answer `json:"answer" bson:"answer" yaml:"answer"`
	Reason string `json:"reason" bson:"reason" yaml:"reason"`
}

// ProductLine is one installed product entry.
type ProductLine struct {
	Name  string `json:"name" bson:"name"`
	Count int    `json:"count" bson:"count"`
}

// InspectionRecord is one committed inspection. Field names on the wire
// match the history format written by the browser version of the tool.
type InspectionRecord struct {
	ID               string                     `json:"id" bson:"id"`
	InspectionDate   Date                       `json:"inspection_date" bson:"inspection_date"`
	Inspector        string                     `json:"inspector" bson:"inspector"`
	SiteName         string                     `json:"site_name" bson:"site_name"`
	Address          string                     `json:"address" bson:"address"`
	Result           Result                     `json:"result" bson:"result"`
	Summary          string                     `json:"summary" bson:"summary"`
	Products         []ProductLine              `json:"products" bson:"products"`
	ChecklistAnswers map[string]ChecklistAnswer `json:"checklist_answers" bson:"checklist_answers"`
	PhotoCount       int                        `json:"photo_count,omitempty" bson:"photo_count,omitempty"`
	CreatedAt        time.Time                  `json:"created_at" bson:"created_at"`
}

// Normalize fills the optional collections older records may lack and
// drops reasons attached to anything but a NO answer.
func (r *InspectionRecord) Normalize() {
	if r.Products == nil {
		r.Products = []ProductLine{}
	}
	if r.ChecklistAnswers == nil {
		r.ChecklistAnswers = map[string]ChecklistAnswer{}
	}
	for id, a := range r.ChecklistAnswers {
		if a.Answer != AnswerNo && a.Reason != "" {
			a.Reason = ""
			r.ChecklistAnswers[id] = a
		}
	}
}

// TotalProducts is the sum of all product line counts.
func (r InspectionRecord) TotalProducts() int {
	total := 0
	for _, p := range r.Products {
		total += p.Count
	}
	return total
}

// AnswerFor returns the stored answer for a checklist item, AnswerUnset
// when the item was never touched.
func (r InspectionRecord) AnswerFor(itemID string) ChecklistAnswer {
	if a, ok := r.ChecklistAnswers[itemID]; ok {
		return a
	}
	return ChecklistAnswer{Answer: AnswerUnset}
}

// Clone returns a deep copy of r.
func (r InspectionRecord) Clone() InspectionRecord {
	c := r
	c.Products = append([]ProductLine(nil), r.Products...)
	c.ChecklistAnswers = make(map[string]ChecklistAnswer, len(r.ChecklistAnswers))
	for k, v := range r.ChecklistAnswers {
		c.ChecklistAnswers[k] = v
	}
	c.Normalize()
	return c
}
