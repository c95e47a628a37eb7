package main

import (
	"log"
	"os"
	"strings"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func ParseLevel(levelStr string) Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	default:
		return WarnLevel
	}
}

// VerbosityLevel maps counted -v flags onto log levels: warnings by
// default, info with -v, debug with -vv or more.
func VerbosityLevel(count int) Level {
	switch {
	case count <= 0:
		return WarnLevel
	case count == 1:
		return InfoLevel
	default:
		return DebugLevel
	}
}

type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	level       Level
}

var logger = NewLogger()

func NewLogger() *Logger {
	return NewLoggerWithLevel(WarnLevel)
}

func NewLoggerWithLevel(level Level) *Logger {
	return &Logger{
		infoLogger:  log.New(os.Stdout, "", 0),
		warnLogger:  log.New(os.Stderr, "[WARN] ", 0),
		errorLogger: log.New(os.Stderr, "[ERROR] ", 0),
		debugLogger: log.New(os.Stdout, "[DEBUG] ", 0),
		level:       level,
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.level <= InfoLevel {
		l.infoLogger.Printf(format, args...)
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level <= WarnLevel {
		l.warnLogger.Printf(format, args...)
	}
}

func (l *Logger) Error(format string, args ...interface{}) {
	if l.level <= ErrorLevel {
		l.errorLogger.Printf(format, args...)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level <= DebugLevel {
		l.debugLogger.Printf(format, args...)
	}
}

func (l *Logger) IsDebugEnabled() bool {
	return l.level <= DebugLevel
}
