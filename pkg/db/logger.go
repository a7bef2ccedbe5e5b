package db

import (
	"gorm.io/gorm/logger"
)

// NewLogger maps the app log level onto gorm's logger. Query logging is only
// interesting when debugging; errors always surface through the store anyway.
func NewLogger(level string) logger.Interface {
	switch level {
	case "trace", "debug":
		return logger.Default.LogMode(logger.Info)
	case "warn", "error":
		return logger.Default.LogMode(logger.Error)
	default:
		return logger.Default.LogMode(logger.Silent)
	}
}
