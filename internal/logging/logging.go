package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

func SetupLogging(level string) (*logrus.Logger, error) {
	return newLogger(os.Stdout, level)
}

func newLogger(out io.Writer, level string) (*logrus.Logger, error) {
	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	logger := logrus.New()
	logger.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyLevel: "loglevel",
		},
	}
	logger.Out = out
	logger.Level = parsedLevel

	return logger, nil
}
