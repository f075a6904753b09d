package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/cmd"
)

// main - is the entry point of the application.
func main() {
	if err := cmd.Root().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		os.Exit(1)
	}
}
