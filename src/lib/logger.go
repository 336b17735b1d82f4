package lib

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the global logrus logger and returns a root entry.
func InitLogger(level string) *logrus.Entry {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	logrus.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(lvl)

	return logrus.WithField("app", "unlinked-server")
}

// ComponentLogger returns a child entry tagged with the component name.
func ComponentLogger(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
