package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ruledist/ruledist/internal/cli"
	"github.com/ruledist/ruledist/internal/ui"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if err := cli.Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, ui.StatusError(err.Error()))
		return 1
	}
	return 0
}
