package main

import (
	"fmt"
	"os"

	"github.com/bedtime-cli/bedtime/cmd"
	"github.com/bedtime-cli/bedtime/config"
	"github.com/bedtime-cli/bedtime/internal/cache"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/where"
)

func main() {
	if err := config.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "bad config in %s: %v\n", where.Config(), err)
		os.Exit(1)
	}

	// the app works without a log
	if err := log.Setup(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	go cache.CollectGarbage()

	cmd.Execute()
}
