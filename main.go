package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/AnyUserName/bmpfx-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
