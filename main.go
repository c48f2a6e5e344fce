// Package main provides the cryptobot CLI.
package main

import (
	"github.com/dotcommander/cryptobot/internal/cmd"
	"github.com/dotcommander/cryptobot/internal/config"
)

// Build vars.
var (
	//nolint: gochecknoglobals
	Version = ""
	//nolint: gochecknoglobals
	CommitSHA = ""
)

func main() {
	cfg, cfgErr := config.Load()
	cmd.Execute(cmd.BuildInfo{Version: Version, CommitSHA: CommitSHA}, cfg, cfgErr)
}
