package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"aceh-poverty-dashboard/config"
	"aceh-poverty-dashboard/utils"
)

const usage = `Usage: aceh-poverty-dashboard [command] [flags]

Commands:
  serve      start the dashboard (default)
  inspect    print a summary of the loaded datasets
  export     write every chart as CSV, XLSX and PNG
  import     copy the CSV datasets into PostgreSQL
  snapshot   capture screenshots of a running dashboard
`

func main() {
	logger := utils.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, args := "serve", os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	a := &app{cfg: cfg, logger: logger}
	var run func(context.Context, []string) error
	switch cmd {
	case "serve":
		run = a.serve
	case "inspect":
		run = a.inspect
	case "export":
		run = a.export
	case "import":
		run = a.importData
	case "snapshot":
		run = a.snapshot
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if err := run(ctx, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Error("%s: %v", cmd, err)
		os.Exit(1)
	}
}
