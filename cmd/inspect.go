package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"boilerInspector/internal/catalog"
	"boilerInspector/internal/inspection"
	"boilerInspector/internal/models"

	"github.com/spf13/cobra"
)

var (
	inspectDate      string
	inspectInspector string
	inspectSite      string
	inspectCity      string
	inspectDistrict  string
	inspectResult    string
	inspectSummary   string
	inspectPhotos    int
	inspectProducts  []string
	inspectAnswers   []string
	inspectAllYes    bool
	inspectPrint     bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Record an inspection without the interactive form",
	Long: `Record an inspection from flags, save it to the history and write its report.

Products are given as NAME=COUNT and checklist answers as ID=yes or
ID=no[:reason]. Use "catalog" to list valid product names and item ids.`,
	Example: `  boiler-inspector inspect --inspector 김점검 --site 행복아파트 \
    --city 서울특별시 --district 강남구 --result 정상 \
    --product NPW-351K=3 --product NCB790=2 --all-yes --answer gas_valve=no:누수`,
	RunE: runInspect,
}

func init() {
	flags := inspectCmd.Flags()
	flags.StringVar(&inspectDate, "date", "", "Inspection date YYYY-MM-DD (default today)")
	flags.StringVar(&inspectInspector, "inspector", "", "Inspector name (required)")
	flags.StringVar(&inspectSite, "site", "", "Site name (required)")
	flags.StringVar(&inspectCity, "city", "", "City (required)")
	flags.StringVar(&inspectDistrict, "district", "", "District (required)")
	flags.StringVar(&inspectResult, "result", "", "Result: 정상, 주의, 불량 (or normal, caution, defective)")
	flags.StringVar(&inspectSummary, "summary", "", "Inspection summary")
	flags.IntVar(&inspectPhotos, "photos", 0, "Number of photos taken")
	flags.StringArrayVar(&inspectProducts, "product", nil, "Installed product as NAME=COUNT (repeatable)")
	flags.StringArrayVar(&inspectAnswers, "answer", nil, "Checklist answer as ID=yes or ID=no[:reason] (repeatable)")
	flags.BoolVar(&inspectAllYes, "all-yes", false, "Answer every checklist item yes before applying --answer")
	flags.BoolVar(&inspectPrint, "print", false, "Also print the report to stdout")
}

func runInspect(cmd *cobra.Command, args []string) error {
	d, err := draftFromFlags(time.Now())
	if err != nil {
		return err
	}

	sub, err := service.Submit(cmd.Context(), d)
	var verr *inspection.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("inspection not saved: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to save inspection: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Saved inspection %s (%s, %s)\n", sub.Record.ID, sub.Record.SiteName, sub.Record.Result)
	if inspectPrint {
		fmt.Fprint(out, sub.Report)
	}
	if sub.DeliveryErr != nil {
		return fmt.Errorf("inspection saved but the report was not written: %w", sub.DeliveryErr)
	}
	fmt.Fprintf(out, "Report written to %s\n", sub.ReportPath)
	return nil
}

func draftFromFlags(now time.Time) (inspection.Draft, error) {
	d := inspection.NewDraft(now)
	if inspectDate != "" {
		date, err := models.ParseDate(inspectDate)
		if err != nil {
			return d, err
		}
		d.InspectionDate = date
	}
	d.Inspector = inspectInspector
	d.SiteName = inspectSite
	d.City = inspectCity
	d.District = inspectDistrict
	d.Summary = inspectSummary
	d.PhotoCount = inspectPhotos
	if inspectResult != "" {
		result, ok := models.ParseResult(inspectResult)
		if !ok {
			return d, fmt.Errorf("invalid result %q: use 정상, 주의 or 불량", inspectResult)
		}
		d.Result = result
	}

	for _, arg := range inspectProducts {
		name, count, err := parseProductFlag(arg)
		if err != nil {
			return d, err
		}
		d = d.WithProduct(name, count)
	}

	if inspectAllYes {
		d = d.WithAllAnswersYes()
	}
	for _, arg := range inspectAnswers {
		id, answer, reason, err := parseAnswerFlag(arg)
		if err != nil {
			return d, err
		}
		d = d.WithChecklistAnswer(id, answer, reason)
	}
	return d, nil
}

func parseProductFlag(arg string) (string, int, error) {
	name, countStr, ok := strings.Cut(arg, "=")
	if !ok {
		countStr = "1"
	}
	name = strings.TrimSpace(name)
	if !catalog.IsProduct(name) {
		return "", 0, fmt.Errorf("unknown product %q", name)
	}
	count, err := strconv.Atoi(strings.TrimSpace(countStr))
	if err != nil || count < 1 {
		return "", 0, fmt.Errorf("invalid count in %q: must be a whole number of at least 1", arg)
	}
	return name, count, nil
}

func parseAnswerFlag(arg string) (string, models.Answer, string, error) {
	id, value, ok := strings.Cut(arg, "=")
	id = strings.TrimSpace(id)
	if !ok || !catalog.IsChecklistItem(id) {
		return "", "", "", fmt.Errorf("invalid answer %q: expected ID=yes or ID=no[:reason] with a checklist item id", arg)
	}
	value, reason, _ := strings.Cut(value, ":")
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y":
		return id, models.AnswerYes, "", nil
	case "no", "n":
		return id, models.AnswerNo, reason, nil
	case "unset", "":
		return id, models.AnswerUnset, "", nil
	}
	return "", "", "", fmt.Errorf("invalid answer %q: expected yes or no", value)
}
