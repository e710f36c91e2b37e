// Package logger builds the process-wide zerolog logger. Every component
// receives its logger from here so output format and destination are decided
// in one place.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	permission = 0664
)

// Build collects logging options before the logger is made.
type Build struct {
	writer  io.Writer
	path    string
	console bool
	level   zerolog.Level
}

// Log is a ready logger plus the resources it owns.
type Log struct {
	writer  io.Writer
	LogFile *os.File
	Logger  zerolog.Logger
}

func New() *Build {
	return &Build{level: zerolog.InfoLevel}
}

// FromPath appends JSON log lines to the file at path.
func (build *Build) FromPath(path string) *Build {
	build.path = path
	return build
}

// FromBuffer writes log lines to w. Used by tests to capture output.
func (build *Build) FromBuffer(w io.Writer) *Build {
	build.writer = w
	return build
}

// Console renders human-readable output instead of JSON. Meant for local
// runs; file output stays JSON regardless.
func (build *Build) Console() *Build {
	build.console = true
	return build
}

// Level sets the minimum level the logger emits.
func (build *Build) Level(level zerolog.Level) *Build {
	build.level = level
	return build
}

func (build *Build) Make() (log *Log, err error) {
	log = new(Log)
	log.writer = os.Stdout
	if build.writer != nil {
		log.writer = build.writer
	}
	if build.path != "" {
		log.LogFile, err = os.OpenFile(build.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		log.writer = zerolog.SyncWriter(log.LogFile)
	} else if build.console {
		log.writer = zerolog.ConsoleWriter{Out: log.writer}
	}
	log.Logger = zerolog.New(log.writer).Level(build.level).With().Timestamp().Logger()
	return
}

// Close releases the log file if one was opened.
func (log *Log) Close() error {
	if log.LogFile != nil {
		return log.LogFile.Close()
	}
	return nil
}
