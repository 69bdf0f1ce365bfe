package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/onramp/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNoDatabaseURL is returned when DATABASE_URL is empty.
var ErrNoDatabaseURL = errors.New("DATABASE_URL is not set")

// NewDBConnection opens the credentials database and pings it within
// cnf.ConnectTimeout. SQL statements are logged in development only.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, ErrNoDatabaseURL
	}

	connection, err := gorm.Open(postgres.Open(cnf.Url), gormConfig(appEnv))
	if err != nil {
		return nil, fmt.Errorf("open credentials database: %w", err)
	}
	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cnf.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cnf.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cnf.ConnMaxLifetime)

	timeout := cnf.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping credentials database: %w", err)
	}
	return connection, nil
}

func gormConfig(appEnv string) *gorm.Config {
	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}
	return &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
	}
}
