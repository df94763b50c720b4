package config

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	logg = newLogger(LogConfig{Level: "info", Format: "text"})
)

// GetLogger 获取全局日志实例
func GetLogger() *logrus.Logger {
	return logg
}

func newLogger(cfg LogConfig) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	configureLogger(l, cfg)
	return l
}

func configureLogger(l *logrus.Logger, cfg LogConfig) {
	if strings.EqualFold(cfg.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
}

func initLogger(cfg LogConfig) {
	configureLogger(logg, cfg)
}

// LogError 带模块与函数信息的错误日志
func LogError(logger *logrus.Logger, moduleName string, funcName string, context string, data any, err error) {
	fields := logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
	}
	if data != nil {
		fields["data"] = data
	}
	logger.WithFields(fields).Error(err.Error())
}
