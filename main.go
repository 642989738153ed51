package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/luminox/luminox/cmd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// main sets up logging from LUMINOX_DEBUG, exits on SIGINT or SIGTERM and runs the CLI.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	configureLogLevelFromEnv()

	stopChan := setupInterruptListener()
	go handleInterrupt(stopChan, func(msg string) { log.Error().Msg(msg) }, os.Exit)

	cmd.Execute(context.Background())
}

// configureLogLevelFromEnv enables debug logging when LUMINOX_DEBUG is set to
// anything but "", "0" or "false". Logging is disabled otherwise.
func configureLogLevelFromEnv() {
	switch os.Getenv("LUMINOX_DEBUG") {
	case "", "0", "false":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func setupInterruptListener() chan os.Signal {
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
	return stopChan
}

// handleInterrupt waits for a signal on stopChan, logs and exits with 130.
func handleInterrupt(stopChan chan os.Signal, logFn func(string), exit func(int)) {
	<-stopChan
	logFn("Interrupt signal received. Exiting...")
	exit(130)
}
