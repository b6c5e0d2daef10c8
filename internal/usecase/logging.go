package usecase

import (
	"io"

	"github.com/sirupsen/logrus"
)

func componentLogger(log logrus.FieldLogger, component string) logrus.FieldLogger {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return log.WithField("component", component)
}
