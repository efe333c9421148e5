package logger

import (
	"github.com/fadilmartias/job-portal/internal/config"
	"go.uber.org/zap"
)

// New builds a production logger in production and a development logger otherwise.
func New(appConfig *config.AppConfig) (*zap.Logger, error) {
	if appConfig.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
