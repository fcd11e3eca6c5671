// Brixie - local-first LEGO catalog browser
//
// Mirrors the Rebrickable catalog into a local SQLite database so sets,
// themes and favorites stay available offline.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mpwg/brixie/internal/cli"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
