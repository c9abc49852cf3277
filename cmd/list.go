package cmd

import (
	"fmt"
	"text/tabwriter"

	"boilerInspector/internal/summary"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"dashboard"},
	Short:   "Show inspection statistics and the most recent inspections",
	RunE:    runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", summary.DefaultRecent, "Number of recent inspections to show")
}

func runList(cmd *cobra.Command, args []string) error {
	stats, recent := service.Dashboard(cmd.Context(), listLimit)

	p := message.NewPrinter(language.Korean)
	out := cmd.OutOrStdout()
	p.Fprintf(out, "총 점검 수: %d\n", stats.Total)
	p.Fprintf(out, "이번 달: %d\n", stats.ThisMonth)
	p.Fprintf(out, "정상: %d  주의: %d  불량: %d\n\n", stats.Normal, stats.Caution, stats.Defective)

	if len(recent) == 0 {
		fmt.Fprintln(out, "아직 점검 기록이 없습니다.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\t점검일\t현장명\t주소\t점검자\t결과\t설치 대수")
	for _, rec := range recent {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			rec.ID, rec.InspectionDate, rec.SiteName, rec.Address, rec.Inspector, rec.Result, rec.TotalProducts())
	}
	return w.Flush()
}
