package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Per-level loggers writing to dated files under logs/. Nil until
// InitLogger runs; the Log* helpers tolerate that so packages can log
// unconditionally (tests never call InitLogger).
var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
)

// InitLogger creates the logs directory and opens today's log files, one per
// level. scripts/analyze_logs.go consumes the same naming scheme.
func InitLogger() error {
	logsDir := "logs"
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %v", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	infoFile, err := os.OpenFile(
		filepath.Join(logsDir, fmt.Sprintf("info-%s.log", timestamp)),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf("failed to open info log file: %v", err)
	}

	errorFile, err := os.OpenFile(
		filepath.Join(logsDir, fmt.Sprintf("error-%s.log", timestamp)),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf("failed to open error log file: %v", err)
	}

	debugFile, err := os.OpenFile(
		filepath.Join(logsDir, fmt.Sprintf("debug-%s.log", timestamp)),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf("failed to open debug log file: %v", err)
	}

	InfoLogger = log.New(infoFile, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(errorFile, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(debugFile, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

	return nil
}

// LogInfo writes to the info log.
func LogInfo(format string, v ...interface{}) {
	if InfoLogger != nil {
		InfoLogger.Printf(format, v...)
	}
}

// LogError writes to the error log.
func LogError(format string, v ...interface{}) {
	if ErrorLogger != nil {
		ErrorLogger.Printf(format, v...)
	}
}

// LogDebug writes to the debug log.
func LogDebug(format string, v ...interface{}) {
	if DebugLogger != nil {
		DebugLogger.Printf(format, v...)
	}
}

// LogRequest records one completed HTTP request. The "Request:" and
// "Status:" markers are what the log analyzer greps for.
func LogRequest(method, path, ip string, status int, duration time.Duration) {
	LogInfo("Request: %s %s from %s - Status: %d - Duration: %v", method, path, ip, status, duration)
}

// LogErrorWithStack records a recovered panic with its stack trace.
func LogErrorWithStack(err error, stack []byte) {
	if ErrorLogger != nil {
		ErrorLogger.Printf("Error: %v\nStack Trace:\n%s", err, stack)
	}
}
