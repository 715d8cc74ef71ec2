package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"

	"github.com/GriffinCanCode/fsbrowser/internal/client"
)

// softFailure reports a filesystem-level failure the gateway answered with
func softFailure(msg string) error {
	return errors.New(msg)
}

type commandList struct {
	path string
	long bool

	out io.Writer
}

func (c *commandList) setup(a *app, k *kingpin.Application) {
	cmd := k.Command("ls", "List a directory.").Alias("list")
	cmd.Flag("long", "Show entry types.").Short('l').BoolVar(&c.long)
	cmd.Arg("path", "Directory relative to the root.").Default("").StringVar(&c.path)
	cmd.Action(a.clientAction(c.run))

	c.out = a.stdout
}

func (c *commandList) run(ctx context.Context, cl *client.Client) error {
	res, err := cl.ListDirectory(ctx, c.path)
	if err != nil {
		return err
	}
	if res.IsSoftError() {
		return softFailure(res.Message())
	}
	return printListing(c.out, res.Value(), c.long)
}

type commandCat struct {
	path string

	out io.Writer
}

func (c *commandCat) setup(a *app, k *kingpin.Application) {
	cmd := k.Command("cat", "Print a text file.").Alias("read")
	cmd.Arg("path", "File relative to the root.").Required().StringVar(&c.path)
	cmd.Action(a.clientAction(c.run))

	c.out = a.stdout
}

func (c *commandCat) run(ctx context.Context, cl *client.Client) error {
	res, err := cl.ReadFile(ctx, c.path)
	if err != nil {
		return err
	}
	if res.IsSoftError() {
		return softFailure(res.Message())
	}
	_, err = io.WriteString(c.out, res.Value().Content)
	return err
}

type commandTree struct {
	path  string
	depth int

	out io.Writer
}

func (c *commandTree) setup(a *app, k *kingpin.Application) {
	cmd := k.Command("tree", "Print a directory subtree.").Alias("walk")
	cmd.Flag("depth", "Levels to descend (0 = unlimited).").Short('d').Default("0").IntVar(&c.depth)
	cmd.Arg("path", "Directory relative to the root.").Default("").StringVar(&c.path)
	cmd.Action(a.clientAction(c.run))

	c.out = a.stdout
}

func (c *commandTree) run(ctx context.Context, cl *client.Client) error {
	res, err := cl.Walk(ctx, c.path, c.depth)
	if err != nil {
		return err
	}
	if res.IsSoftError() {
		return softFailure(res.Message())
	}
	return printTree(c.out, c.path, res.Value())
}

type commandGlob struct {
	pattern string

	out io.Writer
}

func (c *commandGlob) setup(a *app, k *kingpin.Application) {
	cmd := k.Command("glob", "Print paths matching a pattern such as '**/*.go'.")
	cmd.Arg("pattern", "Pattern relative to the root.").Required().StringVar(&c.pattern)
	cmd.Action(a.clientAction(c.run))

	c.out = a.stdout
}

func (c *commandGlob) run(ctx context.Context, cl *client.Client) error {
	res, err := cl.Glob(ctx, c.pattern)
	if err != nil {
		return err
	}
	if res.IsSoftError() {
		return softFailure(res.Message())
	}
	return printPaths(c.out, res.Value())
}

type commandHealth struct {
	out io.Writer
}

func (c *commandHealth) setup(a *app, k *kingpin.Application) {
	cmd := k.Command("health", "Report gateway and accessor health.")
	cmd.Action(a.clientAction(c.run))

	c.out = a.stdout
}

func (c *commandHealth) run(ctx context.Context, cl *client.Client) error {
	report, err := cl.Health(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "gateway:  %s\n", report.Status) //nolint:errcheck
	fmt.Fprintf(c.out, "accessor: %s", report.Accessor.Status) //nolint:errcheck
	if report.Accessor.Error != "" {
		fmt.Fprintf(c.out, " (%s)", report.Accessor.Error) //nolint:errcheck
	}
	fmt.Fprintln(c.out) //nolint:errcheck

	if !report.Healthy() {
		return errors.New("gateway is degraded")
	}
	return nil
}
