package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hoanghai1803/newshub/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if msg := cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout); msg != "" {
		fmt.Fprintln(os.Stderr, "Error:", msg)
		stop()
		os.Exit(1)
	}
}
