package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

func init() {
	// setup default logger
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		panic(err)
	}
}

// Logger gets the current logger.
func Logger() *zap.Logger {
	return logger
}

// SetLogger replaces the current logger.
func SetLogger(l *zap.Logger) {
	logger = l
}

// SetDevelopmentLogger switches to a console logger. Debug messages are
// printed when verbose is true.
func SetDevelopmentLogger(verbose bool) {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.999999")
	level := zapcore.LevelEnabler(zap.InfoLevel)
	if verbose {
		level = zap.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(os.Stderr), level)
	logger = zap.New(core)
}

// CloseLogger mutes the logger. Used by tests.
func CloseLogger() {
	logger = zap.NewNop()
}
