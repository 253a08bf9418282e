package main

import (
	"os"

	"github.com/bedrock-tool/blockmap/utils"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

func setupLogging(debug, trace, logFile bool) {
	logrus.SetLevel(logrus.InfoLevel)
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if trace {
		logrus.SetLevel(logrus.TraceLevel)
	}
	logrus.SetOutput(os.Stderr)

	if !logFile {
		return
	}
	f, err := os.Create(utils.PathData("blockmap.log"))
	if err != nil {
		logrus.Warnf("no log file: %s", err)
		return
	}
	logrus.AddHook(lfshook.NewHook(f, &logrus.TextFormatter{
		DisableColors: true,
	}))
}
