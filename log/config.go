package log

import (
	"github.com/kochabx/seccure/log/writer"
)

// FileConfig 日志文件配置，零值字段使用默认值
type FileConfig struct {
	Filepath         string            `json:"filepath"`
	Filename         string            `json:"filename"`
	FileExt          string            `json:"file_ext"`
	RotateMode       writer.RotateMode `json:"rotate_mode"`
	RotatelogsConfig RotatelogsConfig  `json:"rotatelogs_config"`
	LumberjackConfig LumberjackConfig  `json:"lumberjack_config"`
}

// RotatelogsConfig 按时间轮转配置
type RotatelogsConfig struct {
	MaxAge       int `json:"max_age"`       // 默认 24 小时
	RotationTime int `json:"rotation_time"` // 默认 1 小时
}

// LumberjackConfig 按大小轮转配置
type LumberjackConfig struct {
	MaxSize    int  `json:"max_size"`    // 默认 100 MB
	MaxBackups int  `json:"max_backups"` // 默认 5
	MaxAge     int  `json:"max_age"`     // 默认 30 天
	Compress   bool `json:"compress"`
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// withDefaults 填充默认值
func (c FileConfig) withDefaults() FileConfig {
	if c.Filepath == "" {
		c.Filepath = "log"
	}
	if c.Filename == "" {
		c.Filename = "seccure"
	}
	if c.FileExt == "" {
		c.FileExt = "log"
	}
	c.RotatelogsConfig.MaxAge = orDefault(c.RotatelogsConfig.MaxAge, 24)
	c.RotatelogsConfig.RotationTime = orDefault(c.RotatelogsConfig.RotationTime, 1)
	c.LumberjackConfig.MaxSize = orDefault(c.LumberjackConfig.MaxSize, 100)
	c.LumberjackConfig.MaxBackups = orDefault(c.LumberjackConfig.MaxBackups, 5)
	c.LumberjackConfig.MaxAge = orDefault(c.LumberjackConfig.MaxAge, 30)
	return c
}

// toWriterConfig 转换为 writer.RotateConfig
func (c FileConfig) toWriterConfig() writer.RotateConfig {
	return writer.RotateConfig{
		Filepath: c.Filepath,
		Filename: c.Filename,
		FileExt:  c.FileExt,
		Mode:     c.RotateMode,
		TimeRotateConfig: writer.TimeRotateConfig{
			MaxAge:       c.RotatelogsConfig.MaxAge,
			RotationTime: c.RotatelogsConfig.RotationTime,
		},
		SizeRotateConfig: writer.SizeRotateConfig{
			MaxSize:    c.LumberjackConfig.MaxSize,
			MaxBackups: c.LumberjackConfig.MaxBackups,
			MaxAge:     c.LumberjackConfig.MaxAge,
			Compress:   c.LumberjackConfig.Compress,
		},
	}
}
