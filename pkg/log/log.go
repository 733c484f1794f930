// Package log 构建全局 zerolog logger：stderr 输出（console 或 json），可选 lumberjack 轮转文件.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yeisme/folio/pkg/configs"
)

var (
	logger   zerolog.Logger
	initOnce sync.Once
)

// Init 按当前全局配置初始化 logger，仅第一次调用生效.
func Init() {
	initOnce.Do(initLogger)
}

func initLogger() {
	cfg := configs.GetConfig()

	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	logger = New(cfg.Log, cfg.Server.Debug, os.Stderr)
	log.Logger = logger
}

// New 根据日志配置构造 logger，out 为控制台输出目标.
// 同时设置 zerolog 全局级别，空级别按 info 处理.
func New(cfg configs.LogConfig, debug bool, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || lvl == zerolog.NoLevel {
		if cfg.Level != "" {
			fmt.Fprintf(os.Stderr, "invalid log level %q, defaulting to info\n", cfg.Level)
		}

		lvl = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(lvl)

	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	if f := cfg.File; f.Enabled() {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   f.Path,
			MaxSize:    f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			MaxAge:     f.MaxAgeDays,
			Compress:   f.Compress,
		})
	}

	zctx := zerolog.New(out).With().Timestamp().Str("service", "folio")
	if debug {
		zctx = zctx.Caller()
	}

	return zctx.Logger()
}

// With 返回带 component 字段的子 logger.
func With(component string) *zerolog.Logger {
	l := Logger().With().Str("component", component).Logger()

	return &l
}

// Logger 返回全局 logger，首次调用时初始化.
func Logger() *zerolog.Logger {
	initOnce.Do(initLogger)

	return &logger
}

// GinWriter 把 gin 的文本输出转成 zerolog 事件.
// 行内带 [WARNING] 的提升为 warn，其余使用构造时的级别.
type GinWriter struct {
	logger *zerolog.Logger
	level  zerolog.Level
}

func NewGinWriter(logger *zerolog.Logger, level zerolog.Level) *GinWriter {
	return &GinWriter{logger: logger, level: level}
}

func (w *GinWriter) Write(p []byte) (int, error) {
	for line := range bytes.Lines(p) {
		msg := strings.TrimSpace(string(line))
		msg = strings.TrimSpace(strings.TrimPrefix(msg, "[GIN-debug]"))

		if msg == "" {
			continue
		}

		level := w.level
		if rest, ok := strings.CutPrefix(msg, "[WARNING]"); ok {
			msg = strings.TrimSpace(rest)

			if level < zerolog.WarnLevel {
				level = zerolog.WarnLevel
			}
		}

		w.logger.WithLevel(level).Str("source", "gin").Msg(msg)
	}

	return len(p), nil
}
