package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fedwiki/wikikit/internal/cli/create"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := create.Execute(ctx)
	stop()
	os.Exit(code)
}
