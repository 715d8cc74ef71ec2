package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := newApp(ctx, os.Stdout)
	k := kingpin.New("fsbrowser", "Browse a directory tree over HTTP.")
	a.setup(k)

	_, err := k.Parse(os.Args[1:])
	stop()
	k.FatalIfError(err, "")
}
