package main

import (
	"os"

	"github.com/jacksonrnewhouse/arroyo/cmd/arroyoctl/cmd"
	"github.com/jacksonrnewhouse/arroyo/internal/common"
)

func main() {
	common.ConfigureCommandLineLogging()
	if err := cmd.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
