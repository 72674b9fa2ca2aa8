package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lox/blackjack-tournament/internal/tui"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config  string `short:"c" type:"path" default:"blackjack.hcl" help:"Tournament config file (HCL)"`
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `help:"Disable colored output" env:"NO_COLOR"`
}

type CLI struct {
	Globals

	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Play        PlayCmd          `cmd:"" default:"withargs" help:"Play a tournament against computer opponents"`
	Simulate    SimulateCmd      `cmd:"" help:"Run a computer-only tournament"`
	Bench       BenchCmd         `cmd:"" help:"Compare strategies over many seeded tournaments"`
	Leaderboard LeaderboardCmd   `cmd:"" help:"Show and manage past results"`
}

func main() {
	// A .env file is optional
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Round-robin blackjack tournaments against computer opponents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		tui.DisableColor()
	}

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
