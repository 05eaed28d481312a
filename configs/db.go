package configs

import (
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bigbadbobbo/foodtruck-api/entity"
)

// OpenDB connects to the configured database. The handle is passed to
// whoever needs it; there is no package-level connection.
func OpenDB(driver, source string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{DriverName: "postgres", DSN: source})
	case "sqlite", "":
		dialector = sqlite.Open(source)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger(logrus.StandardLogger()),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if driver != "postgres" {
		// sqlite allows one writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// gormWriter sends gorm's slow-query and error lines through logrus.
type gormWriter struct {
	entry *logrus.Entry
}

func (w gormWriter) Printf(format string, args ...any) {
	w.entry.Warnf(format, args...)
}

func gormLogger(log *logrus.Logger) logger.Interface {
	return logger.New(gormWriter{entry: log.WithField("component", "gorm")}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// SetupDatabase migrates the schema.
func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.FoodTruck{}, &entity.FoodItem{},
		&entity.UserGroup{}, &entity.Membership{},
		&entity.PersonalOrder{}, &entity.PersonalOrderItem{},
		&entity.GroupOrder{}, &entity.GroupMemberOrder{},
		&entity.Rating{},
		&entity.Message{},
	)
}
