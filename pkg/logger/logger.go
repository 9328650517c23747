package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger. Production gets JSON output at info level,
// everything else a development console logger.
func New(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}
