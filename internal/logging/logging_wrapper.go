package logging

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// HandlerFunc is an http handler that reports failures instead of logging them itself.
// The response must already be written when it returns an error.
type HandlerFunc func(http.ResponseWriter, *http.Request, *LogData) error

func LoggingWrapper(loggingName string, log *logrus.Logger, handler HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		log.Debugf("Handler.%v.Start", loggingName)

		logData := NewLogData(log)
		logData.AddData("method", req.Method)
		logData.AddData("path", req.URL.Path)

		endTimer := logData.AddTiming("duration")
		err := handler(w, req, logData)
		endTimer()

		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}
