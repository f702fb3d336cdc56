package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

var (
	appLogger   *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
)

// InitLogger opens the day's log files under logs/ and builds the level
// loggers. Info and debug share one application log; errors get their own
// file and are mirrored to stderr so they show up in container output.
func InitLogger() error {
	if err := os.MkdirAll("logs", 0755); err != nil {
		return fmt.Errorf("creating logs directory: %w", err)
	}

	day := time.Now().Format("2006-01-02")
	appFile, err := openLogFile(fmt.Sprintf("gigsphere-%s.log", day))
	if err != nil {
		return err
	}
	errorFile, err := openLogFile(fmt.Sprintf("gigsphere-error-%s.log", day))
	if err != nil {
		return err
	}

	flags := log.Ldate | log.Ltime | log.Lshortfile
	appLogger = log.New(appFile, "INFO  ", flags)
	debugLogger = log.New(appFile, "DEBUG ", flags)
	errorLogger = log.New(io.MultiWriter(errorFile, os.Stderr), "ERROR ", flags)
	return nil
}

func openLogFile(name string) (*os.File, error) {
	file, err := os.OpenFile(filepath.Join("logs", name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", name, err)
	}
	return file, nil
}

// LogInfo logs an informational message.
func LogInfo(format string, v ...interface{}) {
	if appLogger != nil {
		appLogger.Printf(format, v...)
	}
}

// LogError logs an error message.
func LogError(format string, v ...interface{}) {
	if errorLogger != nil {
		errorLogger.Printf(format, v...)
	}
}

// LogDebug logs a debug message.
func LogDebug(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf(format, v...)
	}
}

// LogRequest records one handled HTTP request.
func LogRequest(method, path, ip string, status int, duration time.Duration) {
	LogInfo("%s %s from %s -> %d in %v", method, path, ip, status, duration)
}

// LogErrorWithStack records a recovered panic with its stack trace.
func LogErrorWithStack(err error, stack []byte) {
	LogError("panic: %v\n%s", err, stack)
}
