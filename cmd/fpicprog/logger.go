package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// logrusLogger adapts a logrus logger to programmer.Logger.
type logrusLogger struct {
	logger *log.Logger
}

func (l logrusLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l logrusLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(fields(keysAndValues)).Info(msg)
}

func (l logrusLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(fields(keysAndValues)).Error(msg)
}

// Convert alternating keys and values into logrus fields. A trailing key
// without a value is kept with a nil value.
func fields(keysAndValues []interface{}) log.Fields {
	f := make(log.Fields, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 < len(keysAndValues) {
			f[key] = keysAndValues[i+1]
		} else {
			f[key] = nil
		}
	}

	return f
}
