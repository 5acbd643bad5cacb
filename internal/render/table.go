// Package render formats table state, odds and simulation results for the
// terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/crapsforbots/internal/craps"
)

const ruleWidth = 52

// Label names a wager the way commands address it: come bets that have
// travelled carry their point, everything else is the bet name.
func Label(w craps.Wager) string {
	if w.Target == craps.NoPoint {
		return w.Bet
	}
	return w.Bet + "_" + w.Target.String()
}

// Table renders the header line, last roll and active bets.
func Table(t *craps.Table) string {
	var b strings.Builder

	point := t.Phase().Point.String()
	b.WriteString(HeaderStyle.Render(fmt.Sprintf(" CRAPS TABLE | Bankroll: $%d | Point: %s | Roll #%d ",
		t.Bankroll(), point, t.RollCount())))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("━", ruleWidth))
	b.WriteString("\n")

	if last, ok := t.LastRoll(); ok {
		d1, d2 := last.Dice()
		fmt.Fprintf(&b, "Last Roll: %s\n", DiceStyle.Render(fmt.Sprintf("%d + %d = %d", d1, d2, last.Total())))
	}

	b.WriteString(Bets(t.Bets()))
	return b.String()
}

// Bets lists wagers one per line, or "(none)".
func Bets(wagers []craps.Wager) string {
	if len(wagers) == 0 {
		return "Active Bets: " + InfoStyle.Render("(none)") + "\n"
	}

	var b strings.Builder
	b.WriteString("Active Bets:\n")
	for _, w := range wagers {
		fmt.Fprintf(&b, "  %s: $%d", Label(w), w.Stake)
		if w.Odds > 0 {
			fmt.Fprintf(&b, " (odds $%d)", w.Odds)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Roll summarises one settled roll. delta is the change in bankroll plus
// exposure across the roll.
func Roll(res craps.RollResult, delta int) string {
	var b strings.Builder
	d1, d2 := res.Roll.Dice()
	fmt.Fprintf(&b, "Rolled: %s\n", DiceStyle.Render(fmt.Sprintf("%d + %d = %d", d1, d2, res.Roll.Total())))

	switch {
	case delta > 0:
		b.WriteString(SuccessStyle.Render(fmt.Sprintf("Won: $%d", delta)))
		b.WriteString("\n")
	case delta < 0:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Lost: $%d", -delta)))
		b.WriteString("\n")
	}

	switch {
	case !res.Before.On() && res.After.On():
		b.WriteString(PointStyle.Render("Point is " + res.After.Point.String()))
		b.WriteString("\n")
	case res.Before.On() && !res.After.On():
		b.WriteString(PointStyle.Render("Point OFF"))
		b.WriteString("\n")
	}
	return b.String()
}

// Limits renders the table limits.
func Limits(cfg craps.Config) string {
	var b strings.Builder
	b.WriteString("Table Limits:\n")
	fmt.Fprintf(&b, "  Minimum bet:  $%d\n", cfg.TableMin)
	fmt.Fprintf(&b, "  Maximum bet:  $%d\n", cfg.TableMax)
	fmt.Fprintf(&b, "  Max odds:     %dx\n", cfg.MaxOdds)
	fmt.Fprintf(&b, "  Prop minimum: $%d\n", cfg.PropMin)
	return b.String()
}

// Catalog lists every bet name on t grouped by kind.
func Catalog(t *craps.Table) string {
	groups := map[craps.Kind][]string{}
	var order []craps.Kind
	for _, name := range t.Names() {
		bet, err := t.Bet(name)
		if err != nil {
			continue
		}
		k := bet.Kind()
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], name)
	}

	var b strings.Builder
	b.WriteString("Available Bets:\n")
	b.WriteString(strings.Repeat("-", 40))
	b.WriteString("\n")
	for _, k := range order {
		fmt.Fprintf(&b, "%s:\n  %s\n", title(k.String()), strings.Join(groups[k], ", "))
	}
	for _, k := range craps.PropKinds {
		fmt.Fprintf(&b, "  %-10s %s\n", k.String(), InfoStyle.Render(k.Describe()))
	}
	return b.String()
}

// OddsChart tabulates true odds and house payouts for every point number.
func OddsChart(cfg craps.Config) string {
	rows := make([][]string, 0, len(craps.Points))
	for _, p := range craps.Points {
		unit := craps.OddsIncrement(p)
		rows = append(rows, []string{
			p.String(),
			craps.TrueOdds(p).String(),
			fmt.Sprintf("$%d", unit),
			fmt.Sprintf("$%d", cfg.MaxOdds*cfg.TableMin),
			craps.PlaceOdds(p).String(),
			fmt.Sprintf("%s less $%d on $%d", craps.TrueOdds(p).String(), craps.Commission(20), 20),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Number", "True odds", "Odds unit", "Max odds on min", "Place pays", "Buy pays").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		}).
		String()
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
