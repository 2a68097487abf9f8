package util

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Logger = zerolog.Logger

// LogLevel represents available log levels
type LogLevel = int

// Log levels
const (
	TraceLevel LogLevel = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
)

// AllDebugFlags enables trace logging for every component group
const AllDebugFlags = '@'

// Debug flag characters grouping components for trace logging
const (
	CommandFlag  = 'c'
	InodeFlag    = 'i'
	ResolveFlag  = 'r'
	TraverseFlag = 't'
	ReadLoopFlag = 'y'
	RequestsFlag = 'n'
)

var debugFlags string

// InitializeLogger sets up the global logger with the specified configuration.
// Output goes to stderr since stdout carries the shell transcript.
func InitializeLogger(level LogLevel) {
	InitializeLoggerTo(os.Stderr, level)
}

// InitializeLoggerTo is [InitializeLogger] with an explicit writer
func InitializeLoggerTo(out io.Writer, level LogLevel) {
	// Set time format to ISO8601
	zerolog.TimeFieldFormat = time.RFC3339

	// The global level stays at trace so per-component debug flags can lower
	// an individual logger below the base level.
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: out != os.Stderr}

	ctx := zerolog.New(output).With().Timestamp()
	if level == TraceLevel {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger().Level(toZerolog(level))
	log.Debug().Msg("Logger initialized")
}

func toZerolog(level LogLevel) zerolog.Level {
	switch level {
	case TraceLevel:
		return zerolog.TraceLevel
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// GetLogger returns a configured logger for a specific component
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// SetDebugFlags replaces the set of enabled debug flag characters
func SetDebugFlags(flags string) {
	debugFlags = flags
}

// DebugFlag reports whether flag (or [AllDebugFlags]) was enabled
func DebugFlag(flag byte) bool {
	return strings.IndexByte(debugFlags, AllDebugFlags) >= 0 ||
		strings.IndexByte(debugFlags, flag) >= 0
}

// GetFlagLogger returns [GetLogger] for component, lowered to trace level
// when its debug flag is enabled.
func GetFlagLogger(flag byte, component string) zerolog.Logger {
	logger := GetLogger(component)
	if DebugFlag(flag) {
		return logger.Level(zerolog.TraceLevel)
	}
	return logger
}
