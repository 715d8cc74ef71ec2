package main

import (
	"context"

	"github.com/alecthomas/kingpin/v2"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/config"
	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/logging"
	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/server"
)

type accessorFlags struct {
	root        string
	addr        string
	metricsAddr string
	maxMsgBytes int
}

func (f *accessorFlags) setup(cmd *kingpin.CmdClause) {
	cmd.Flag("root", "Directory to serve.").StringVar(&f.root)
	cmd.Flag("addr", "Accessor gRPC address.").StringVar(&f.addr)
	cmd.Flag("metrics-addr", "Serve accessor metrics on this address.").StringVar(&f.metricsAddr)
	cmd.Flag("max-msg-bytes", "Largest RPC message in bytes.").IntVar(&f.maxMsgBytes)
}

func (f *accessorFlags) apply(cfg *config.Config) error {
	if f.root != "" {
		cfg.Accessor.Root = f.root
	}
	if f.addr != "" {
		cfg.Accessor.Addr = f.addr
	}
	if f.metricsAddr != "" {
		cfg.Accessor.MetricsAddr = f.metricsAddr
	}
	if f.maxMsgBytes > 0 {
		cfg.Accessor.MaxMsgBytes = f.maxMsgBytes
	}
	return nil
}

type gatewayFlags struct {
	host        string
	port        string
	noLimit     bool
	origins     []string
	callTimeout string
}

func (f *gatewayFlags) setup(cmd *kingpin.CmdClause) {
	cmd.Flag("host", "Gateway listen host.").StringVar(&f.host)
	cmd.Flag("port", "Gateway listen port.").Short('p').StringVar(&f.port)
	cmd.Flag("no-rate-limit", "Disable per-client rate limiting.").BoolVar(&f.noLimit)
	cmd.Flag("cors-origin", "Allowed browser origin (repeatable).").StringsVar(&f.origins)
	cmd.Flag("call-timeout", "Per-call accessor timeout, e.g. 5s (0 = none).").StringVar(&f.callTimeout)
}

func (f *gatewayFlags) apply(cfg *config.Config) error {
	if f.host != "" {
		cfg.Gateway.Host = f.host
	}
	if f.port != "" {
		cfg.Gateway.Port = f.port
	}
	if f.noLimit {
		cfg.RateLimit.Enabled = false
	}
	if len(f.origins) > 0 {
		cfg.CORS.Origins = f.origins
	}
	if f.callTimeout != "" {
		return cfg.Accessor.CallTimeout.UnmarshalText([]byte(f.callTimeout))
	}
	return nil
}

type commandAccessor struct {
	flags accessorFlags
}

func (c *commandAccessor) setup(a *app, k *kingpin.Application) {
	cmd := k.Command("accessor", "Serve a directory tree over gRPC.")
	c.flags.setup(cmd)
	cmd.Action(a.serverAction(c.flags.apply, c.run))
}

func (c *commandAccessor) run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	acc, err := server.NewAccessor(cfg, logger)
	if err != nil {
		return err
	}
	return acc.Run(ctx)
}

type commandGateway struct {
	accessorAddr string
	flags        gatewayFlags
}

func (c *commandGateway) setup(a *app, k *kingpin.Application) {
	cmd := k.Command("gateway", "Serve the HTTP file API backed by an accessor.")
	cmd.Flag("accessor", "Accessor gRPC address.").StringVar(&c.accessorAddr)
	c.flags.setup(cmd)
	cmd.Action(a.serverAction(c.apply, c.run))
}

func (c *commandGateway) apply(cfg *config.Config) error {
	if c.accessorAddr != "" {
		cfg.Accessor.Addr = c.accessorAddr
	}
	return c.flags.apply(cfg)
}

func (c *commandGateway) run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	gw, err := server.NewGateway(cfg, logger)
	if err != nil {
		return err
	}
	defer gw.Close() //nolint:errcheck

	return gw.Run(ctx)
}

// commandServe runs accessor and gateway in one process
type commandServe struct {
	accessor accessorFlags
	gateway  gatewayFlags
}

func (c *commandServe) setup(a *app, k *kingpin.Application) {
	cmd := k.Command("serve", "Run accessor and gateway together.")
	c.accessor.setup(cmd)
	c.gateway.setup(cmd)
	cmd.Action(a.serverAction(c.apply, c.run))
}

func (c *commandServe) apply(cfg *config.Config) error {
	if err := c.accessor.apply(cfg); err != nil {
		return err
	}
	return c.gateway.apply(cfg)
}

func (c *commandServe) run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {

	acc, err := server.NewAccessor(cfg, logger)
	if err != nil {
		return err
	}
	gw, err := server.NewGateway(cfg, logger)
	if err != nil {
		return err
	}
	defer gw.Close() //nolint:errcheck

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return acc.Run(ctx) })
	g.Go(func() error { return gw.Run(ctx) })
	return g.Wait()
}
