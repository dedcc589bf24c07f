package main

import (
	"os"

	"github.com/codegate-sec/codegate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
