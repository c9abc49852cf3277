package inspection

import (
	"fmt"
	"strings"
)

// Required field names reported by ValidationError.
const (
	FieldInspectionDate = "inspectionDate"
	FieldInspector      = "inspector"
	FieldSiteName       = "siteName"
	FieldCity           = "city"
	FieldDistrict       = "district"
	FieldResult         = "result"
)

// ValidationError lists the required fields missing at submit time.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Has reports whether field is among the missing ones.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}
