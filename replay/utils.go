package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
)

// Flags represents the command-line flags that are passed to replay.
type Flags struct {
	File  string
	JSON  bool
	Debug bool
	Log   string
	Wire  bool
}

// parseFlags parses command-line flags.
func parseFlags() Flags {
	file := flag.String("file", "", "The TOML scenario to replay")
	useJSON := flag.Bool("json", false, "Format logs as JSON")
	enableDebug := flag.Bool("debug", false, "Enable debugging mode to show more verbose logs")
	logPath := flag.String("log", "", "Write logs to this file instead of stderr")
	showWire := flag.Bool("wire", false, "Print every hub reply as a JSON wire message")

	flag.Parse()

	return Flags{
		File:  *file,
		JSON:  *useJSON,
		Debug: *enableDebug,
		Log:   *logPath,
		Wire:  *showWire,
	}
}

// setupLogger initializes replay's logger (logrus). The returned file, if
// any, must be closed by the caller.
func setupLogger(logger *logrus.Logger, flags Flags) (*os.File, error) {
	logger.SetOutput(os.Stderr)
	if flags.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	levels := []logrus.Level{logrus.WarnLevel, logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel}
	if flags.Debug {
		logger.SetLevel(logrus.DebugLevel)
		levels = append(levels, logrus.InfoLevel, logrus.DebugLevel, logrus.TraceLevel)
	}

	if flags.Log == "" {
		return nil, nil
	}

	// Open the log file and create if it does not exist.
	logFile, err := os.OpenFile(flags.Log, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) // skipcq: GSC-G302
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	logger.SetOutput(io.Discard)
	logger.AddHook(&writer.Hook{
		Writer:    logFile,
		LogLevels: levels,
	})

	return logFile, nil
}
