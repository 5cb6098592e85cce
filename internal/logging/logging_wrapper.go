package logging

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// statusWriter remembers the status code a plain handler wrote.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// LoggingWrapper adapts a handler that reports its failure as an error into an
// http.HandlerFunc that emits one Start and one Complete or Error entry per
// request. The LogData is also reachable through the request context.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		logData.AddData("method", req.Method)
		log.Infof("Handler.%v.Start", loggingName)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		endTimer := logData.AddTiming("duration")
		err := handler(sw, req.WithContext(WithLogData(req.Context(), logData)), logData)
		endTimer()
		logData.AddData("status", sw.status)

		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}
		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}
