package main

import (
	"os"

	"github.com/degit-io/degit-riptide/pkg/cli"
)

func main() {
	if err := cli.New().Run(os.Args); err != nil {
		os.Exit(1)
	}
}
