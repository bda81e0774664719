package utils

import "github.com/sirupsen/logrus"

// LogEvent emits a standardized service-level log line. Avoid logging
// sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	logrus.WithFields(logrus.Fields{
		"module":     module,
		"action":     action,
		"request_id": requestID,
	}).Info(message)
}
