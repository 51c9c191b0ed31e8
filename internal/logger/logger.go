// Package logger builds the process-wide zap logger.
package logger

import "go.uber.org/zap"

// New returns a development logger for APP_ENV=development and a JSON
// production logger otherwise.
func New(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
