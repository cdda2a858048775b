// Package logging adapts the application's zap logger to the calculation
// engine's logging interface.
package logging

import (
	"go.uber.org/zap"

	"github.com/andiescott-hub/personal-finance-calculator/internal/calculation"
)

// ZapLogger wraps a zap.SugaredLogger to satisfy calculation.Logger.
type ZapLogger struct {
	S *zap.SugaredLogger
}

var _ calculation.Logger = ZapLogger{}

func (l ZapLogger) Debugf(format string, args ...any) { l.S.Debugf(format, args...) }
func (l ZapLogger) Infof(format string, args ...any)  { l.S.Infof(format, args...) }
func (l ZapLogger) Warnf(format string, args ...any)  { l.S.Warnf(format, args...) }
func (l ZapLogger) Errorf(format string, args ...any) { l.S.Errorf(format, args...) }

// NewLogger builds the application logger. Verbose enables debug level and
// development formatting.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
