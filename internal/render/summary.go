package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/crapsforbots/internal/simulator"
)

// Summary renders the outcome of a simulation run against a starting
// bankroll.
func Summary(res *simulator.Result, bankroll int) string {
	stats := res.Stats
	low, high := stats.ConfidenceInterval95()

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf(" %s: %d sessions from $%d ", res.Strategy, stats.Sessions, bankroll)))
	b.WriteString("\n")

	perSec := 0.0
	if res.Elapsed > 0 {
		perSec = float64(stats.Sessions) / res.Elapsed.Seconds()
	}
	fmt.Fprintf(&b, "Total time: %v (%.0f sessions/sec)\n\n", res.Elapsed.Round(time.Millisecond), perSec)

	rows := [][]string{
		{"Mean net", money(stats.Mean())},
		{"Median net", money(stats.Median())},
		{"Std dev", fmt.Sprintf("%.2f", stats.StdDev())},
		{"95% CI", fmt.Sprintf("[%s, %s]", money(low), money(high))},
		{"P5 / P95", fmt.Sprintf("%s / %s", money(stats.Percentile(0.05)), money(stats.Percentile(0.95)))},
		{"Best / worst", fmt.Sprintf("$%d / $%d", stats.BestNet, stats.WorstNet)},
		{"Win rate", percent(stats.WinRate())},
		{"Bust rate", percent(stats.BustRate())},
		{"Mean rolls", fmt.Sprintf("%.1f", stats.MeanRolls())},
		{"Total wagered", fmt.Sprintf("$%d", stats.TotalWagered)},
		{"House edge", percent(stats.HouseEdge())},
	}

	b.WriteString(table.New().
		Border(lipgloss.RoundedBorder()).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return headerCellStyle
			}
			return cellStyle
		}).
		String())
	b.WriteString("\n")

	if err := stats.Validate(); err != nil {
		b.WriteString(ErrorStyle.Render("LEDGER MISMATCH: " + err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func money(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
