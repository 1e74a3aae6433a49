package main

import (
	"os"

	"github.com/stackup-dev/stackup/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	os.Exit(cli.Main(os.Args[1:], os.Stdout, os.Stderr))
}
