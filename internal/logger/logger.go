// Package logger builds the service's zap logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/config"
)

// New 根据配置初始化日志
//
// Output "stdout" (default) writes to stdout only; "file" writes to a
// rotated file; "both" tees to the two.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	if cfg.Output != "file" && cfg.Output != "both" {
		return zapCfg.Build()
	}

	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(zapCfg.EncoderConfig)
	} else {
		enc = zapcore.NewConsoleEncoder(zapCfg.EncoderConfig)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.AddSync(rotator(cfg)), zapCfg.Level),
	}
	if cfg.Output == "both" {
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(os.Stdout), zapCfg.Level))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func rotator(cfg config.LogConfig) *lumberjack.Logger {
	path := cfg.FilePath
	if path == "" {
		path = "logs/speclogic.log"
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}
