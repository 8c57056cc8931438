package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

// GetLogger returns the process-wide logger, creating it on first use.
// Before Setup is called it discards everything.
func GetLogger() *logrus.Logger {
	if logg != nil {
		return logg
	}
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.ErrorLevel)
	logg.SetOutput(io.Discard)
	return logg
}

// Setup points the logger at the given file. The TUI owns the terminal, so
// logs never go to stdout or stderr.
func Setup(path, level string) error {
	logger := GetLogger()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.ErrorLevel
	}
	logger.SetLevel(lvl)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	logger.SetOutput(file)
	return nil
}
