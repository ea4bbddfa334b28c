package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// ============================================================
// shaftctl
// ============================================================

const usage = `usage: shaftctl [-log-level LEVEL] <command> [flags]

commands:
  render    draw a YAML drawing request to PNG or SVG
  validate  check a YAML drawing request and print the derived dimensions
  samples   draw the built-in sample catalogue into a directory
`

func main() {
	defer zap.S().Sync()
	level := zap.LevelFlag("log-level", zap.InfoLevel, "set log level")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(*level)
	dev, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(dev)

	if err := run(flag.Args(), os.Stdout); err != nil {
		zap.S().Errorf("%v", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("no command\n%s", usage)
	}
	switch args[0] {
	case "render":
		return renderCmd(args[1:], stdout)
	case "validate":
		return validateCmd(args[1:], stdout)
	case "samples":
		return samplesCmd(args[1:], stdout)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}
