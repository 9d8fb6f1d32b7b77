// Package logger builds the application zap logger: console output always,
// plus a daily log file when a log directory is resolvable.
package logger

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvLogDir      = "SAMARTH_LOG_DIR"
	logFilePerm    = 0o644
	logDirPerm     = 0o755
	defaultLogRoot = "logs"
)

// ResolveDir resolves the log directory, preferring the env override.
func ResolveDir() string {
	if dir := strings.TrimSpace(os.Getenv(EnvLogDir)); dir != "" {
		return dir
	}
	return filepath.Join(".", defaultLogRoot)
}

func todayFilePath(now time.Time) string {
	return filepath.Join(ResolveDir(), "server_"+now.Format("2006-01-02")+".log")
}

// New builds the application logger. Development mode uses a human-readable
// console encoder; production uses JSON. File logging is best-effort: when
// the directory cannot be created, console-only logging is returned.
func New(dev bool) (*zap.Logger, error) {
	level := zap.InfoLevel
	if dev {
		level = zap.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var consoleEncoder zapcore.Encoder
	if dev {
		devCfg := zap.NewDevelopmentEncoderConfig()
		devCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEncoder = zapcore.NewConsoleEncoder(devCfg)
	} else {
		consoleEncoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), level),
	}

	if file := openLogFile(); file != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.Lock(zapcore.AddSync(file)),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func openLogFile() *os.File {
	dir := ResolveDir()
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil
	}
	file, err := os.OpenFile(todayFilePath(time.Now()), os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFilePerm)
	if err != nil {
		return nil
	}
	return file
}
