package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/crapsforbots/internal/craps"
	"github.com/lox/crapsforbots/internal/dice"
	"github.com/lox/crapsforbots/internal/render"
)

// Output is what one command produced
type Output struct {
	Lines []string
	Quit  bool
}

// Session runs REPL commands against one table
type Session struct {
	table  *craps.Table
	dice   dice.Source
	logger *log.Logger
}

// NewSession wraps table. Rolls without explicit dice come from source.
func NewSession(table *craps.Table, source dice.Source, logger *log.Logger) *Session {
	return &Session{
		table:  table,
		dice:   source,
		logger: logger.WithPrefix("session"),
	}
}

// Table returns the table the session drives
func (s *Session) Table() *craps.Table {
	return s.table
}

// Execute parses and runs one command line
func (s *Session) Execute(input string) Output {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(parts) == 0 {
		return Output{}
	}
	cmd, args := parts[0], parts[1:]
	s.logger.Debug("Executing command", "cmd", cmd, "args", args)

	switch cmd {
	case "quit", "exit":
		return Output{Lines: []string{"Goodbye!"}, Quit: true}
	case "help":
		return lines(helpText)
	case "bet":
		return s.setBet(args, false)
	case "odds":
		return s.setBet(args, true)
	case "roll":
		return s.roll(args)
	case "info":
		return s.info(args)
	case "reset":
		return s.reset(args)
	case "table":
		return lines(render.Table(s.table))
	default:
		return Output{Lines: []string{
			render.ErrorStyle.Render("Unknown command: " + cmd),
			"Type 'help' for available commands.",
		}}
	}
}

const helpText = `Craps Commands:
----------------------------------------
  bet <name> <amount> [point]    Set a stake (0 to remove)
  odds <name> <amount> [point]   Set odds behind pass_line or a come point
  roll [d1 d2]                   Roll the dice and settle bets
  info table                     Show table limits
  info bets                      List available bet names
  info odds                      Show the odds chart
  table                          Show the table
  reset [bankroll]               Clear the table and start again
  help                           Show this help message
  quit                           Exit`

func (s *Session) setBet(args []string, odds bool) Output {
	verb := "bet"
	if odds {
		verb = "odds"
	}
	if len(args) < 2 || len(args) > 3 {
		return Output{Lines: []string{
			fmt.Sprintf("Usage: %s <name> <amount> [point]", verb),
			fmt.Sprintf("Example: %s pass_line 10", verb),
		}}
	}

	name := args[0]
	amount, err := strconv.Atoi(args[1])
	if err != nil {
		return errorf("Invalid amount '%s'", args[1])
	}
	target := craps.NoPoint
	if len(args) == 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return errorf("Invalid point '%s'", args[2])
		}
		if target, err = craps.ParsePoint(n); err != nil {
			return errorf("%v", err)
		}
	}

	if odds {
		err = s.table.SetBetOdds(name, amount, target)
	} else {
		err = s.table.SetBetStake(name, amount, target)
	}
	label := render.Label(craps.Wager{Bet: name, Target: target})
	switch {
	case errors.Is(err, craps.ErrUnknownBet):
		return Output{Lines: []string{
			render.ErrorStyle.Render(fmt.Sprintf("Unknown bet '%s'", name)),
			"Use 'info bets' to see available bet names",
		}}
	case err != nil:
		return errorf("Illegal %s: %v", verb, err)
	case amount == 0 && odds:
		return success("Removed odds: " + label)
	case amount == 0:
		return success("Removed bet: " + label)
	case odds:
		return success(fmt.Sprintf("Set odds: %s = $%d", label, amount))
	default:
		return success(fmt.Sprintf("Set bet: %s = $%d", label, amount))
	}
}

func (s *Session) roll(args []string) Output {
	var roll dice.Roll
	switch len(args) {
	case 0:
		roll = s.dice.Next()
	case 2:
		d1, err1 := strconv.Atoi(args[0])
		d2, err2 := strconv.Atoi(args[1])
		if err := errors.Join(err1, err2); err != nil {
			return errorf("Invalid dice '%s %s'", args[0], args[1])
		}
		r, err := dice.NewRoll(d1, d2)
		if err != nil {
			return errorf("%v", err)
		}
		roll = r
	default:
		return lines("Usage: roll [d1 d2]")
	}

	before := s.table.Bankroll() + s.table.Exposure()
	res := s.table.Step(roll)
	after := s.table.Bankroll() + s.table.Exposure()

	out := lines(render.Roll(res, after-before))
	out.Lines = append(out.Lines, splitLines(render.Table(s.table))...)
	return out
}

func (s *Session) info(args []string) Output {
	if len(args) != 1 {
		return lines("Usage: info table | info bets | info odds")
	}
	switch args[0] {
	case "table":
		return lines(render.Limits(s.table.Config()))
	case "bets":
		return lines(render.Catalog(s.table))
	case "odds":
		return lines(render.OddsChart(s.table.Config()))
	}
	return lines("Usage: info table | info bets | info odds")
}

func (s *Session) reset(args []string) Output {
	bankroll := s.table.InitialBankroll()
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return errorf("Invalid bankroll '%s'", args[0])
		}
		bankroll = n
	}
	if err := s.table.Reset(bankroll); err != nil {
		return errorf("%v", err)
	}
	return lines(render.Table(s.table))
}

func lines(text string) Output {
	return Output{Lines: splitLines(text)}
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}

func success(msg string) Output {
	return Output{Lines: []string{render.SuccessStyle.Render(msg)}}
}

func errorf(format string, args ...any) Output {
	return Output{Lines: []string{render.ErrorStyle.Render(fmt.Sprintf(format, args...))}}
}
