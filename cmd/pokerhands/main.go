package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerhands/cmd/pokerhands/shared"
	"github.com/lox/pokerhands/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version   kong.VersionFlag `short:"v" help:"Show version"`
	Config    string           `default:"pokerhands.hcl" env:"POKERHANDS_CONFIG" help:"HCL configuration file (ignored when missing)"`
	LogLevel  string           `env:"POKERHANDS_LOG_LEVEL" help:"Log level: debug, info, warn or error (overrides config)"`
	LogFormat string           `default:"text" enum:"text,json" help:"Log output format (text or json)"`
	NoColor   bool             `env:"POKERHANDS_NO_COLOR" help:"Disable colored output"`

	Count    CountCmd    `cmd:"" help:"Count rounds won by player 1 in a rounds file"`
	Compare  CompareCmd  `cmd:"" help:"Compare two hands"`
	Classify ClassifyCmd `cmd:"" help:"Classify a single hand"`
	Serve    ServeCmd    `cmd:"" help:"Serve hand evaluation over WebSocket"`
	Generate GenerateCmd `cmd:"" help:"Deal random rounds for testing and benchmarks"`
}

// Env carries what every command needs to run
type Env struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Logger *log.Logger
	Config *config.Config
	Clock  quartz.Clock
	Color  bool
}

func newParser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	return kong.New(cli, append([]kong.Option{
		kong.Name("pokerhands"),
		kong.Description("Poker hand evaluator: who wins each round of five card poker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	}, opts...)...)
}

// loadConfig reads the configuration file and applies global flag overrides
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.NoColor {
		cfg.Report.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cfg, err := cli.loadConfig()
	ctx.FatalIfErrorf(err)

	logger := shared.NewLogger(os.Stderr, cli.LogFormat, cfg.Level())
	sigCtx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	err = ctx.Run(&Env{
		Ctx:    sigCtx,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Logger: logger,
		Config: cfg,
		Clock:  quartz.NewReal(),
		Color:  !cfg.Report.NoColor,
	})
	ctx.FatalIfErrorf(err)
}
