package main

import (
	"os"

	"github.com/sadopc/moodlog/internal/cli"
	"github.com/sadopc/moodlog/internal/config"
)

func main() {
	os.Exit(cli.Run(config.Load(), os.Args[1:], os.Stdout, os.Stderr))
}
