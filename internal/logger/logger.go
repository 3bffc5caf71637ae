package logger

import (
	"sync"

	"go.uber.org/zap"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a singleton logger configured with the provided level.
// The first call initializes the logger; subsequent calls ignore the level
// and return the already initialized instance.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level, nil)
	})
	return globalLogger
}

// Init builds the singleton with an additional rotating file sink.
// filePattern is a strftime pattern such as "logs/climate-%Y-%m-%d.log";
// empty disables the file sink. Init must run before the first Get.
func Init(level, filePattern string) (*Logger, error) {
	var err error
	once.Do(func() {
		var sink *fileSink
		if filePattern != "" {
			sink, err = newFileSink(filePattern)
			if err != nil {
				return
			}
		}
		globalLogger = newZapLogger(level, sink)
	})
	if err != nil {
		return nil, err
	}
	return globalLogger, nil
}

// Nop returns a logger that discards everything. Intended for tests.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}
