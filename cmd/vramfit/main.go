package main

import (
	"context"
	"os"

	"vramfit/internal/ui"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		ui.Bad.Fprintf(os.Stderr, "vramfit: %v\n", err)
		os.Exit(1)
	}
}
