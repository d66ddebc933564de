// Package log writes the application log with logrus.
//
// Nothing is written unless logs.write is set.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// KeepDays is how many daily log files survive Setup.
const KeepDays = 7

var logger = silent()

func silent() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

func enabled() bool {
	return logger.Out != io.Discard
}

// Setup points the log at today's file in the logs directory
// and removes files older than KeepDays.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = silent()
		return nil
	}

	dir := where.Logs()
	today := time.Now().Format(time.DateOnly) + ".log"

	file, err := filesystem.API().OpenFile(filepath.Join(dir, today), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}

	l := logrus.New()
	l.SetOutput(file)
	l.SetLevel(level)
	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	logger = l

	prune(dir, KeepDays)
	return nil
}

// prune removes all but the newest keep log files in dir.
func prune(dir string, keep int) {
	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".log") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return
	}

	// dated names sort chronologically
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := filesystem.API().Remove(filepath.Join(dir, name)); err != nil {
			logger.Warnf("remove old log %s: %v", name, err)
		}
	}
}

// Fields saves callers an import of logrus.
type Fields = logrus.Fields

// With starts an entry carrying fields.
func With(fields Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func Error(args ...any)                 { logger.Error(args...) }
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }
func Warn(args ...any)                  { logger.Warn(args...) }
func Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func Info(args ...any)                  { logger.Info(args...) }
func Infof(format string, args ...any)  { logger.Infof(format, args...) }
func Debug(args ...any)                 { logger.Debug(args...) }
func Debugf(format string, args ...any) { logger.Debugf(format, args...) }
