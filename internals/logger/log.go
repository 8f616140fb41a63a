package logger

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/lumberjack.v2"

	"absensiku_backend/internals/configs"
)

// Init menyiapkan slog default: JSON ke stdout dan/atau file berotasi.
func Init() {
	level := parseLevel(configs.GetEnv("LOG_LEVEL", "info"))

	var writers []io.Writer
	if console, _ := strconv.ParseBool(configs.GetEnv("LOG_CONSOLE", "true")); console {
		writers = append(writers, os.Stdout)
	}
	if file := configs.GetEnv("LOG_FILE"); file != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    envInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: envInt("LOG_MAX_BACKUPS", 5),
			MaxAge:     envInt("LOG_MAX_AGE_DAYS", 30),
			LocalTime:  true,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	h := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
	Info("logger initialized", "level", configs.GetEnv("LOG_LEVEL", "info"), "file", configs.GetEnv("LOG_FILE"))
}

func Info(msg string, args ...any)  { slog.Info(msg, args...) }
func Warn(msg string, args ...any)  { slog.Warn(msg, args...) }
func Error(msg string, args ...any) { slog.Error(msg, args...) }
func Debug(msg string, args ...any) { slog.Debug(msg, args...) }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(configs.GetEnv(key, ""))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
