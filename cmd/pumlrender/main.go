package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"pumlrender/internal/renderfail"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(renderfail.ExitCode(err))
	}
}
