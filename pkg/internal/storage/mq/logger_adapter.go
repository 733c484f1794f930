package mq

import (
	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// logAdapter 把 watermill 日志写入 zerolog. watermill 的 info 日志（订阅建立、关闭等）降为 debug.
type logAdapter struct {
	l zerolog.Logger
}

// NewLoggerAdapter 包装 zerolog，供 watermill 组件使用.
func NewLoggerAdapter(l *zerolog.Logger) watermill.LoggerAdapter {
	return logAdapter{l: *l}
}

func (a logAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.l.Error().Err(err).Fields(map[string]any(fields)).Msg(msg)
}

func (a logAdapter) Info(msg string, fields watermill.LogFields) {
	a.l.Debug().Fields(map[string]any(fields)).Msg(msg)
}

func (a logAdapter) Debug(msg string, fields watermill.LogFields) {
	a.l.Trace().Fields(map[string]any(fields)).Msg(msg)
}

func (a logAdapter) Trace(msg string, fields watermill.LogFields) {
	a.l.Trace().Fields(map[string]any(fields)).Msg(msg)
}

func (a logAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return logAdapter{l: a.l.With().Fields(map[string]any(fields)).Logger()}
}
