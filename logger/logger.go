package logger

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/logger"
)

var initialized bool

// InitLogger sets up the process-wide logger. With an empty path log
// records only go to stderr, otherwise they are appended to the file as
// well.
func InitLogger(logPath string) {
	sink := io.Discard

	if logPath != "" {
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			PrintFatal("Could not open log file: %s", err)
		}
		sink = file
	}

	logger.Init("bolt11", true, false, sink)
	logger.SetFlags(log.LstdFlags)

	initialized = true
}

func Fatal(message string) {
	if !initialized {
		PrintFatal("%s", message)
	}
	logger.Fatal(message)
}

func Error(message string) {
	if initialized {
		logger.Error(message)
	}
}

func Errorf(format string, args ...any) {
	Error(fmt.Sprintf(format, args...))
}

func Warning(message string) {
	if initialized {
		logger.Warning(message)
	}
}

func Warningf(format string, args ...any) {
	Warning(fmt.Sprintf(format, args...))
}

func Info(message string) {
	if initialized {
		logger.Info(message)
	}
}

func Infof(format string, args ...any) {
	Info(fmt.Sprintf(format, args...))
}

func PrintFatal(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}
