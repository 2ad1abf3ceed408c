// Package logzero provides a versatile yet easy to use logging setup for
// the console and optionally a logfile.
//
// The call logzero.Info("hello") prints log messages in this format:
//
//	[I 170213 15:02:00 main:203] hello
//
// Usage:
//
//	logzero.Debug("hello")
//	logzero.Info("info")
//	logzero.Warning("warn")
//	logzero.Error("error")
//
// In order to also log to a file, use logzero.LogFile(..). If you want
// specific loggers instead of the process-wide default logger, use
// logzero.Setup(..):
//
//	logger, err := logzero.Setup(logzero.Options{
//		Name:    "worker",
//		LogFile: "/var/log/worker.log",
//		Level:   logzero.INFO,
//	})
//
// The default minimum level is DEBUG. Repeated Setup calls for the same
// name reconfigure the existing logger in place without duplicating
// destinations.
package logzero

import "log/syslog"

// std is the process-wide default logger, constructed eagerly with a
// DEBUG threshold and a stderr destination.
var std = func() *Logger {
	l, _ := defaultRegistry.Setup(Options{})
	return l
}()

// DefaultLogger returns the process-wide default logger.
func DefaultLogger() *Logger {
	return std
}

// ResetDefaultLogger resets the default logger to its initial
// configuration: stderr destination only, DEBUG threshold, text
// formatter.
func ResetDefaultLogger() *Logger {
	l, _ := defaultRegistry.Reset(DefaultLoggerName)
	return l
}

// Debug logs a message at DEBUG level on the default logger.
func Debug(format string, args ...interface{}) {
	std.log(1, DEBUG, "", format, args...)
}

// Info logs a message at INFO level on the default logger.
func Info(format string, args ...interface{}) {
	std.log(1, INFO, "", format, args...)
}

// Warning logs a message at WARNING level on the default logger.
func Warning(format string, args ...interface{}) {
	std.log(1, WARNING, "", format, args...)
}

// Error logs a message at ERROR level on the default logger.
func Error(format string, args ...interface{}) {
	std.log(1, ERROR, "", format, args...)
}

// Critical logs a message at CRITICAL level on the default logger.
func Critical(format string, args ...interface{}) {
	std.log(1, CRITICAL, "", format, args...)
}

// Exception logs an error with a stack trace on the default logger.
func Exception(err error, format string, args ...interface{}) {
	trace := ""
	if err != nil {
		trace = err.Error() + "\n"
	}
	trace += captureStack(2)
	std.log(1, ERROR, trace, format, args...)
}

// SetLevel sets the minimum level of the default logger and its internal
// destinations. User-added destinations keep their levels; use
// (*Logger).SetLevel with updateCustom to change those too.
func SetLevel(level Level) {
	std.SetLevel(level, false)
}

// SetFormatter sets the formatter of the default logger's internal
// destinations.
func SetFormatter(f Formatter) {
	std.SetFormatter(f, false)
}

// EnableJSON toggles JSON output on the default logger.
func EnableJSON(enabled bool) {
	std.EnableJSON(enabled, false, false)
}

// LogFile sets up logging to a file on the default logger. By default
// the file grows indefinitely; set MaxBytes and BackupCount in opts to
// enable rotation with ".1", ".2", ... backups.
func LogFile(path string, opts FileOptions) error {
	return std.LogFile(path, opts)
}

// AddSyslog switches the default logger to the platform syslog.
func AddSyslog(facility syslog.Priority, disableStreams bool) (*Destination, error) {
	return std.AddSyslog(facility, disableStreams)
}
