// Package logx holds the shared application logger.
package logx

import (
	"github.com/sirupsen/logrus"

	"ipocket/internal/config"
)

var logger = logrus.New()

// Init configures the shared logger from config
func Init(cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// L returns the shared logger
func L() *logrus.Logger {
	return logger
}
