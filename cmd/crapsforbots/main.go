package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play craps interactively in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate many sessions of a betting strategy"`
	Serve    ServeCmd         `cmd:"" help:"Serve craps tables to bots over websockets"`
	Bot      BotCmd           `cmd:"" help:"Run strategy bots against a server"`
	Odds     OddsCmd          `cmd:"" help:"Print the odds and payout chart"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("crapsforbots"),
		kong.Description("Craps table engine for humans, bots and simulations"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
