package log

import (
	"github.com/rs/zerolog"

	"github.com/kochabx/seccure/log/desensitize"
)

// G 全局日志实例：控制台输出，默认启用内置脱敏规则
var G = New(WithDesensitize(desensitize.NewBuiltinHook()))

// SetGlobalLogger 替换全局日志实例
func SetGlobalLogger(logger *Logger) {
	G = logger
}

// SetGlobalLevel 设置全局日志实例的级别
func SetGlobalLevel(level zerolog.Level) {
	G.Logger = G.Logger.Level(level)
}

// For 返回全局日志实例下带 component 字段的子 Logger
func For(component string) *Logger {
	return G.Component(component)
}

func Debug() *zerolog.Event { return G.Debug() }
func Info() *zerolog.Event  { return G.Info() }
func Warn() *zerolog.Event  { return G.Warn() }

// Error 带堆栈
func Error() *zerolog.Event { return G.Error().Stack() }

func Debugf(format string, args ...any) { G.Debug().Msgf(format, args...) }
func Infof(format string, args ...any)  { G.Info().Msgf(format, args...) }
func Warnf(format string, args ...any)  { G.Warn().Msgf(format, args...) }
func Errorf(format string, args ...any) { G.Error().Stack().Msgf(format, args...) }
