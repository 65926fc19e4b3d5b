package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Bootstrap configures the shared logger. Unknown levels fall back to info.
func Bootstrap(level string) {
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)
}
