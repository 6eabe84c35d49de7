// Command consolectl is the terminal client for the traders console. It
// keeps a login per profile in the configured session backend (a local file
// by default) and talks to the same billing backend as the web console.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/shreebalaji/traders-console/pkg/logger"
)

func main() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	log := logger.Init(logger.Options{Level: level, Pretty: true, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	a := newApp(ctx, log)
	err := a.root().execute(os.Args[1:], os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, failureStyle.Render("error:"), err)
		os.Exit(1)
	}
}
