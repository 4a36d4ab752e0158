package common

import (
	"fmt"
	"github.com/lni/dragonboat/v4/logger"
	"io"
	"log"
	"os"
	"strings"
)

// LoggerNames lists every named logger of pine
var LoggerNames = []string{"rpc", "transport/rpc", "server", "memory"}

// levels maps the accepted level names to dragonboat levels
var levels = map[string]logger.LogLevel{
	"debug":   logger.DEBUG,
	"info":    logger.INFO,
	"warn":    logger.WARNING,
	"warning": logger.WARNING,
	"error":   logger.ERROR,
}

// pineLogger writes one line per message: time, level tag, logger name, text.
// It satisfies dragonboat's logger.ILogger so packages keep using
// logger.GetLogger for their package level loggers.
type pineLogger struct {
	name  string
	level logger.LogLevel
	out   *log.Logger
}

func newPineLogger(name string, w io.Writer) *pineLogger {
	return &pineLogger{
		name:  name,
		level: logger.WARNING,
		out:   log.New(w, "", log.Ldate|log.Ltime),
	}
}

func (l *pineLogger) SetLevel(level logger.LogLevel) { l.level = level }

func (l *pineLogger) Debugf(format string, args ...interface{}) {
	l.emit(logger.DEBUG, "DEBUG", format, args)
}

func (l *pineLogger) Infof(format string, args ...interface{}) {
	l.emit(logger.INFO, "INFO", format, args)
}

func (l *pineLogger) Warningf(format string, args ...interface{}) {
	l.emit(logger.WARNING, "WARN", format, args)
}

func (l *pineLogger) Errorf(format string, args ...interface{}) {
	l.emit(logger.ERROR, "ERROR", format, args)
}

// Panicf logs regardless of the level and panics with the message
func (l *pineLogger) Panicf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.out.Printf("%-5s | %-13s | %s", "PANIC", l.name, msg)
	panic(msg)
}

func (l *pineLogger) emit(level logger.LogLevel, tag, format string, args []interface{}) {
	if l.level < level {
		return
	}
	l.out.Printf("%-5s | %-13s | %s", tag, l.name, fmt.Sprintf(format, args...))
}

// CreateLogger is the logger.Factory installed by InitLoggers. Output goes
// to stderr, stdout belongs to command results.
func CreateLogger(pkgName string) logger.ILogger {
	return newPineLogger(pkgName, os.Stderr)
}

// ParseLogLevel converts a level name (case insensitive) to a logger.LogLevel
func ParseLogLevel(level string) (logger.LogLevel, error) {
	if lvl, ok := levels[strings.ToLower(level)]; ok {
		return lvl, nil
	}
	return 0, fmt.Errorf("invalid log level %q, want one of debug, info, warn, error", level)
}

// InitLoggers installs CreateLogger as dragonboat's logger factory and sets
// every logger in LoggerNames to level.
func InitLoggers(level string) error {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return err
	}

	logger.SetLoggerFactory(CreateLogger)
	for _, name := range LoggerNames {
		logger.GetLogger(name).SetLevel(lvl)
	}
	return nil
}
