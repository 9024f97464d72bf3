// Package logger provides the leveled loggers used by the command line and the decomposition engine.
package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

const defaultLogFormat = "%{color}%{time:15:04:05.000} %{level:.4s} %{module}%{color:reset}: %{message}"

// LogLevelFlag defines the level of logging of the app.
var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   "level of the logging of the app action (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\")",
	Value:   "info",
}

//go:generate mockgen -source logger.go -destination logger_mock.go -package logger

// Logger is the subset of a go-logging logger the rest of the code relies on.
type Logger interface {
	Criticalf(format string, args ...any)
	Errorf(format string, args ...any)
	Warningf(format string, args ...any)
	Noticef(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
	IsEnabledFor(level logging.Level) bool
}

var (
	backendOnce sync.Once
	backend     logging.LeveledBackend
)

// leveledBackend returns the stderr backend shared by every module, installing it as the
// go-logging default on first use.
func leveledBackend() logging.LeveledBackend {
	backendOnce.Do(func() {
		stderr := logging.NewLogBackend(os.Stderr, "", 0)
		formatter := logging.NewBackendFormatter(stderr, logging.MustStringFormatter(defaultLogFormat))
		backend = logging.SetBackend(formatter)
	})
	return backend
}

// NewLogger provides a new instance of the Logger for the given module, writing to stderr.
// An unknown level falls back to INFO. Each module keeps its own level.
func NewLogger(level string, module string) Logger {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot parse log level %q (%v); using INFO\n", level, err)
		lvl = logging.INFO
	}
	leveledBackend().SetLevel(lvl, module)
	return logging.MustGetLogger(module)
}

// ParseTime splits elapsed into hours, minutes and seconds.
func ParseTime(elapsed time.Duration) (uint32, uint32, uint32) {
	total := uint32(elapsed.Round(time.Second).Seconds())
	return total / 3600, total % 3600 / 60, total % 60
}
