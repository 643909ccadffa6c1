// Command report prints the draft hit-rate analysis as console tables, for
// a quick look at the numbers without starting the dashboard.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"draftpulse/internal/analytics"
	"draftpulse/internal/config"
	"draftpulse/internal/dataprocessing"
)

func main() {
	baseDir := flag.String("dir", "", "base directory for data files (defaults to DRAFTPULSE_BASE_DIR or cwd)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	var paths *config.Paths
	if *baseDir != "" {
		paths = config.NewPaths(*baseDir)
	} else if paths, err = config.GetPaths(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve paths: %v\n", err)
		os.Exit(1)
	}

	players, err := dataprocessing.LoadMergedDataset(paths.MergedCSV())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nRun the scraper and processor first.\n", err)
		os.Exit(1)
	}

	summary := analytics.Summarize(players, cfg.Analysis.MinPlayers)
	fmt.Printf("Draft classes %d-%d: %d players, %d All-Pros\n\n",
		summary.YearMin, summary.YearMax, summary.TotalPlayers, summary.TotalAllPros)

	renderRoundTable(analytics.HitRatesByRound(players))
	fmt.Println()
	renderPositionTable(analytics.HitRatesByPosition(players, cfg.Analysis.MinPlayers))
	fmt.Println()
	renderValueTable(analytics.ValueTable(players, cfg.Analysis.ValueTableR1Min, cfg.Analysis.ValueTableR35Min))
}

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	return t
}

func percent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

func renderRoundTable(rates []analytics.RoundHitRate) {
	t := newTable("All-Pro Hit Rate by Round")
	t.AppendHeader(table.Row{"Round", "Players", "All-Pros", "Hit Rate"})
	for _, r := range rates {
		t.AppendRow(table.Row{r.Round, r.TotalPlayers, r.AllProCount, percent(r.HitRate)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Hit Rate", Align: text.AlignRight},
	})
	t.Render()
}

func renderPositionTable(rates []analytics.PositionHitRate) {
	t := newTable("All-Pro Hit Rate by Position")
	t.AppendHeader(table.Row{"Position", "Players", "All-Pros", "Hit Rate"})
	for _, r := range rates {
		t.AppendRow(table.Row{r.Position, r.TotalPlayers, r.AllProCount, percent(r.HitRate)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Hit Rate", Align: text.AlignRight},
	})
	t.Render()
}

func renderValueTable(rows []analytics.ValueTableRow) {
	t := newTable("Mid-Round Value by Position (Rounds 3-5 vs Round 1)")
	t.AppendHeader(table.Row{"Position", "R1 Rate", "R3-5 Rate", "Ratio"})
	for _, row := range rows {
		ratio := "n/a"
		if row.Ratio != nil {
			ratio = fmt.Sprintf("%.3f", *row.Ratio)
		}
		t.AppendRow(table.Row{row.Position, percent(row.R1Rate), percent(row.R35Rate), ratio})
	}
	t.Render()
}
