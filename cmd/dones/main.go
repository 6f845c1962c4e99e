package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/dones/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if errors.Is(err, cli.ErrNotDone) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}
