package logger

import (
	"os"

	"gitlab.com/bugfix-arena.net/internal/adapter/logging"
)

var Logger = logging.NewZapLogger(os.Getenv("LOG_LEVEL"))

// Init rebuilds the global logger once the environment file is loaded
func Init(level string) {
	Logger = logging.NewZapLogger(level)
}

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}
