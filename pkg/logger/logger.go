package logger

import (
	"os"
	"stockadmin/conf"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 基于zap的全局日志，文件输出走lumberjack滚动切割

var lg *zap.Logger = zap.NewNop()
var sugar *zap.SugaredLogger = lg.Sugar()

// InitLogger 初始化全局logger，appName会作为日志字段携带
func InitLogger(cfg *conf.LogConfig, appName string) {
	level := zapcore.InfoLevel
	_ = level.UnmarshalText([]byte(cfg.Level))

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05.000"
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(timeFormat))
	}
	encCfg.TimeKey = "time"

	var cores []zapcore.Core
	if cfg.FileName != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), fileWriter, level))
	}
	if cfg.Console || cfg.FileName == "" {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), level))
	}

	lg = zap.New(zapcore.NewTee(cores...), zap.AddCallerSkip(1)).With(zap.String("app", appName))
	sugar = lg.Sugar()
}

// Pair 组装一个日志字段
func Pair(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

func Debug(msg string, fields ...zap.Field) { lg.Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { lg.Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { lg.Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { lg.Error(msg, fields...) }

func Fatal(msg string, fields ...zap.Field) { lg.Fatal(msg, fields...) }

func Debugf(format string, args ...interface{}) { sugar.Debugf(format, args...) }

func Infof(format string, args ...interface{}) { sugar.Infof(format, args...) }

func Warnf(format string, args ...interface{}) { sugar.Warnf(format, args...) }

func Errorf(format string, args ...interface{}) { sugar.Errorf(format, args...) }

func Fatalf(format string, args ...interface{}) { sugar.Fatalf(format, args...) }

// Sync 刷新缓冲的日志
func Sync() {
	_ = lg.Sync()
}
