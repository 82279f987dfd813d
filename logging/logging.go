package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// sourceFormatter moves the caller into an x_file_source field rendered as file.go:line.
type sourceFormatter struct {
	underlying logrus.Formatter
}

func (f *sourceFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry.HasCaller() {
		entry.Data["x_file_source"] = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}
	return f.underlying.Format(entry)
}

// NewLogger returns a logger writing to out at the given level. An unknown
// level falls back to info.
func NewLogger(level string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stdout
	}

	logger := logrus.New()
	logger.SetOutput(out)

	lv, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lv = logrus.InfoLevel
	}
	logger.SetLevel(lv)

	logger.SetFormatter(&sourceFormatter{
		underlying: &logrus.TextFormatter{
			FullTimestamp: true,
			CallerPrettyfier: func(*runtime.Frame) (string, string) {
				return "", ""
			},
		},
	})
	logger.SetReportCaller(true)

	return logger
}

// Component scopes a logger to one pipeline component.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	return logger.WithField("component", name)
}
