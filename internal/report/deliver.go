package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"boilerInspector/internal/models"

	"golang.org/x/text/unicode/norm"
)

// Deliverer hands a finished report to the user.
type Deliverer interface {
	Deliver(filename, content string) (string, error)
}

// DeliveryError reports a report that was generated but not delivered.
// The record it belongs to is already committed.
type DeliveryError struct {
	Filename string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver report %s: %v", e.Filename, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Filename returns 점검보고서_{site}_{date}.txt, NFC-normalised with path
// separators removed from the site name.
func Filename(rec models.InspectionRecord) string {
	site := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, strings.TrimSpace(rec.SiteName))
	return norm.NFC.String(fmt.Sprintf("점검보고서_%s_%s.txt", site, rec.InspectionDate))
}

// FileDeliverer writes reports into a directory.
type FileDeliverer struct {
	Dir string
}

func NewFileDeliverer(dir string) *FileDeliverer {
	return &FileDeliverer{Dir: dir}
}

// Deliver writes content to Dir/filename and returns the written path.
func (d *FileDeliverer) Deliver(filename, content string) (string, error) {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return "", &DeliveryError{Filename: filename, Err: fmt.Errorf("failed to create report directory: %w", err)}
	}
	path := filepath.Join(d.Dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", &DeliveryError{Filename: filename, Err: fmt.Errorf("failed to write report: %w", err)}
	}
	return path, nil
}
