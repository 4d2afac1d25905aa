package main

import (
	"os"

	"github.com/wippyai/hermes-abi/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
