package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fedwiki/wikikit/internal/cli/sites"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := sites.ExecuteChanges(ctx)
	stop()
	os.Exit(code)
}
