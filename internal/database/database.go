package database

import (
	"context"
	"fmt"

	"github.com/fadilmartias/job-portal/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open builds the connection pool without dialing the server, so an
// unreachable database does not prevent the process from starting.
func Open(dbConfig *config.DBConfig, appConfig *config.AppConfig, logger *zap.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Info
	if appConfig.IsProduction() {
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	logger.Info("database pool configured",
		zap.String("host", dbConfig.Host),
		zap.String("database", dbConfig.Name),
		zap.Int("max_open_conns", dbConfig.MaxOpenConns),
		zap.Int("max_idle_conns", dbConfig.MaxIdleConns))

	return db, nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
