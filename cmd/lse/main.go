// Command lse indexes a document corpus and answers two-keyword searches.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/cmd/lse/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
