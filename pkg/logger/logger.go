package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel 將設定字串轉為 slog.Level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// New 建立結構化 Logger
//
// 參數:
//
//	w: 輸出目標 (通常是 os.Stderr，stdout 留給程式輸出)
//	level: "debug", "info", "warn", "error"
//	format: "text" 或 "json"
//
// 回傳值:
//
//	*slog.Logger: Logger
//	error: 等級或格式不合法
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return slog.New(handler), nil
}

// Discard 丟棄所有輸出，測試用
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
