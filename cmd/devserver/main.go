// Command devserver serves an in-memory courtside API for local
// development of the client.
package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/courtside/internal/fakeapi"
)

func main() {
	ctx := context.Background()

	cfg := &fakeapi.Config{}
	cfg.LoadDefaults()
	fakeapi.ParseFlags(cfg, os.Args[1:])

	app := fakeapi.NewApp(cfg)
	app.Run(ctx)
}
