package csv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"boilerInspector/internal/models"

	"github.com/jszwec/csvutil"
)

// utf8BOM lets spreadsheet tools detect the encoding of Korean text.
const utf8BOM = "\ufeff"

// Row is the flat CSV shape of one inspection record. Products are written
// as "NAME:COUNT; NAME:COUNT" and checklist answers as a JSON object.
type Row struct {
	ID             string        `csv:"id"`
	InspectionDate models.Date   `csv:"inspection_date"`
	Inspector      string        `csv:"inspector"`
	SiteName       string        `csv:"site_name"`
	Address        string        `csv:"address"`
	Result         models.Result `csv:"result"`
	Summary        string        `csv:"summary"`
	Products       string        `csv:"products"`
	TotalProducts  int           `csv:"total_products"`
	Checklist      string        `csv:"checklist_answers"`
	PhotoCount     int           `csv:"photo_count"`
	CreatedAt      time.Time     `csv:"created_at"`
}

// ToRow flattens rec.
func ToRow(rec models.InspectionRecord) (Row, error) {
	answers, err := json.Marshal(rec.ChecklistAnswers)
	if err != nil {
		return Row{}, fmt.Errorf("failed to encode checklist answers: %w", err)
	}
	parts := make([]string, 0, len(rec.Products))
	for _, p := range rec.Products {
		parts = append(parts, fmt.Sprintf("%s:%d", p.Name, p.Count))
	}
	return Row{
		ID:             rec.ID,
		InspectionDate: rec.InspectionDate,
		Inspector:      rec.Inspector,
		SiteName:       rec.SiteName,
		Address:        rec.Address,
		Result:         rec.Result,
		Summary:        rec.Summary,
		Products:       strings.Join(parts, "; "),
		TotalProducts:  rec.TotalProducts(),
		Checklist:      string(answers),
		PhotoCount:     rec.PhotoCount,
		CreatedAt:      rec.CreatedAt,
	}, nil
}

// Record rebuilds the inspection record from a row.
func (r Row) Record() (models.InspectionRecord, error) {
	rec := models.InspectionRecord{
		ID:             r.ID,
		InspectionDate: r.InspectionDate,
		Inspector:      r.Inspector,
		SiteName:       r.SiteName,
		Address:        r.Address,
		Result:         r.Result,
		Summary:        r.Summary,
		PhotoCount:     r.PhotoCount,
		CreatedAt:      r.CreatedAt,
	}

	for _, part := range strings.Split(r.Products, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		i := strings.LastIndex(part, ":")
		if i <= 0 {
			return models.InspectionRecord{}, fmt.Errorf("record %s: invalid product %q", r.ID, part)
		}
		count, err := strconv.Atoi(part[i+1:])
		if err != nil {
			return models.InspectionRecord{}, fmt.Errorf("record %s: invalid product count %q: %w", r.ID, part, err)
		}
		rec.Products = append(rec.Products, models.ProductLine{Name: part[:i], Count: count})
	}

	if strings.TrimSpace(r.Checklist) != "" {
		if err := json.Unmarshal([]byte(r.Checklist), &rec.ChecklistAnswers); err != nil {
			return models.InspectionRecord{}, fmt.Errorf("record %s: invalid checklist answers: %w", r.ID, err)
		}
	}

	rec.Normalize()
	return rec, nil
}

// WriteRecords writes records as CSV with a header row.
func WriteRecords(w io.Writer, records []models.InspectionRecord) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if len(records) == 0 {
		if err := enc.EncodeHeader(Row{}); err != nil {
			return fmt.Errorf("failed to encode CSV header: %w", err)
		}
	}
	for _, rec := range records {
		row, err := ToRow(rec)
		if err != nil {
			return err
		}
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to encode record %s: %w", rec.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

type Parser struct {
	filename string
}

func NewParser(filename string) *Parser {
	return &Parser{filename: filename}
}

// ParseRecords reads a CSV file written by WriteRecords.
func (p *Parser) ParseRecords() ([]models.InspectionRecord, error) {
	file, err := os.Open(p.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return ReadRecords(file)
}

// ReadRecords decodes CSV rows into records.
func ReadRecords(r io.Reader) ([]models.InspectionRecord, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, []byte(utf8BOM)) {
		_, _ = br.Discard(len(utf8BOM))
	}

	decoder, err := csvutil.NewDecoder(csv.NewReader(br))
	if err == io.EOF {
		return []models.InspectionRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}

	var rows []Row
	if err := decoder.Decode(&rows); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode CSV: %w", err)
	}

	records := make([]models.InspectionRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.Record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
