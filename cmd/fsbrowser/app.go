package main

import (
	"context"
	"io"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/GriffinCanCode/fsbrowser/internal/client"
	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/config"
	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/logging"
)

// app holds global flags and the process context shared by all commands
type app struct {
	ctx    context.Context
	stdout io.Writer

	configFile string
	logLevel   string
	dev        bool

	gatewayURL string
	timeout    time.Duration
}

func newApp(ctx context.Context, stdout io.Writer) *app {
	return &app{ctx: ctx, stdout: stdout}
}

func (a *app) setup(k *kingpin.Application) {
	k.Flag("config", "Config file (YAML or TOML) overlaid on environment settings.").Envar("FSBROWSER_CONFIG").StringVar(&a.configFile)
	k.Flag("log-level", "Log level: debug, info, warn, error.").StringVar(&a.logLevel)
	k.Flag("dev", "Development logging (console, colored).").BoolVar(&a.dev)
	k.Flag("url", "Gateway base URL for client commands.").Envar("FSBROWSER_URL").Default(client.DefaultBaseURL).StringVar(&a.gatewayURL)
	k.Flag("timeout", "Client request timeout.").Default("30s").DurationVar(&a.timeout)

	(&commandAccessor{}).setup(a, k)
	(&commandGateway{}).setup(a, k)
	(&commandServe{}).setup(a, k)
	(&commandList{}).setup(a, k)
	(&commandCat{}).setup(a, k)
	(&commandTree{}).setup(a, k)
	(&commandGlob{}).setup(a, k)
	(&commandHealth{}).setup(a, k)
}

// loadConfig applies defaults, environment, the config file and global flags
// in that order. Command flags are applied by the commands themselves.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithFile(a.configFile)
	if err != nil {
		return nil, err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.dev {
		cfg.Logging.Development = true
	}
	return cfg, nil
}

func (a *app) newLogger(cfg *config.Config) (*logging.Logger, error) {
	lc := logging.DefaultConfig()
	if cfg.Logging.Development {
		lc = logging.DevelopmentConfig()
	}
	if cfg.Logging.Level != "" {
		lc.Level = cfg.Logging.Level
	}
	return logging.New(lc)
}

// serverAction loads configuration, lets the command adjust it, validates it
// and runs the command with a logger.
func (a *app) serverAction(override func(*config.Config) error, run func(context.Context, *config.Config, *logging.Logger) error) kingpin.Action {
	return func(*kingpin.ParseContext) error {
		cfg, err := a.loadConfig()
		if err != nil {
			return err
		}
		if err := override(cfg); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := a.newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		return run(a.ctx, cfg, logger)
	}
}

// clientAction runs a command against the gateway at --url
func (a *app) clientAction(run func(context.Context, *client.Client) error) kingpin.Action {
	return func(*kingpin.ParseContext) error {
		c := client.New(a.gatewayURL, client.Options{Timeout: a.timeout})
		return run(a.ctx, c)
	}
}
