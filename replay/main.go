package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

func main() {
	os.Exit(replay(parseFlags()))
}

// replay runs the scenario named by flags and returns the exit code: 1 when
// the scenario fails, 2 when it cannot be run.
func replay(flags Flags) int {
	if flags.File == "" {
		color.Red("No scenario given, use -file")
		return 2
	}

	logFile, err := setupLogger(logger, flags)
	if err != nil {
		color.Red("Logger error, exiting: %s", err)
		return 2
	}
	if logFile != nil {
		defer logFile.Close()
	}

	scenario, err := loadScenario(flags.File)
	if err != nil {
		logger.WithError(err).Error("could not load scenario")
		color.Red("%s", err)
		return 2
	}

	logger.WithFields(logrus.Fields{
		"file":    flags.File,
		"submits": len(scenario.Submits),
		"checks":  len(scenario.Checks),
	}).Info("replaying scenario")

	res, err := newRunner(os.Stdout, logger, flags.Wire).run(scenario)
	if err != nil {
		logger.WithError(err).Error("replay failed")
		color.Red("%s", err)
		return 2
	}

	if res.Failures > 0 {
		logger.WithField("failures", res.Failures).Warn("scenario failed")
		color.Red("%d failure(s)", res.Failures)
		return 1
	}
	fmt.Println(color.GreenString("ok"))
	return 0
}
