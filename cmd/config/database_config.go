package config

import (
	"fmt"
	"strings"
	"time"

	"Go-Recipe-Hub/internal/utils"

	sqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDB opens postgres by default; DB_DRIVER=sqlite opens the file at DB_PATH instead.
func ConnectDB(logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	driver := strings.ToLower(strings.TrimSpace(utils.GetConfig("DB_DRIVER")))

	switch driver {
	case "sqlite":
		dialector = sqlite.Open(utils.GetConfig("DB_PATH"))
	case "", "postgres":
		driver = "postgres"
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Ho_Chi_Minh",
			utils.GetConfig("DB_HOST"),
			utils.GetConfig("DB_USER"),
			utils.GetConfig("DB_PASSWORD"),
			utils.GetConfig("DB_NAME"),
			utils.GetConfig("DB_PORT"),
		)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger(logger)})
	if err != nil {
		logger.Error("database connection failed", zap.String("driver", driver), zap.Error(err))
		return nil, err
	}
	logger.Info("database connected", zap.String("driver", driver))
	return db, nil
}

// newGormLogger writes gorm warnings through zap. Lookups that find nothing are not logged.
func newGormLogger(logger *zap.Logger) gormlogger.Interface {
	return gormlogger.New(zap.NewStdLog(logger.Named("gorm")), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
