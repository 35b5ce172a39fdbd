// Package main is the entry point for the transmute text transformation
// utility.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/transmute/internal/app"
	"github.com/dshills/transmute/internal/hotkey"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		terminal    bool
		noWatch     bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&terminal, "terminal", false, "Capture the hotkey from the terminal instead of :toggle")
	flag.BoolVar(&noWatch, "no-watch", false, "Disable live config reload")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Transmute - text transformation utility\n\n")
		fmt.Fprintf(os.Stderr, "Usage: transmute [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nType :help at the prompt for interactive commands.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Transmute %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	cons := newConsole(os.Stdout)

	var listener hotkey.Listener = manualListener{}
	if terminal {
		listener = hotkey.NewTerminalListener()
	}

	application, err := app.New(app.Options{
		ConfigPath:  configPath,
		Listener:    listener,
		Surface:     cons,
		WatchConfig: !noWatch,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()
	cons.app = application

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	go cons.loop(os.Stdin)

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}
