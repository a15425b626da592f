package main

import (
	"os"

	"github.com/zeuson0/fedlearner/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
