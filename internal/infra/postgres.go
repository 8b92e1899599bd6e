package infra

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"questflow/internal/models/db_models"
)

// InitPostgresql opens the result archive database and migrates its tables.
// An empty dsn disables the archive and returns a nil *gorm.DB.
func InitPostgresql(dsn string, log *zap.Logger) (*gorm.DB, error) {
	if dsn == "" {
		log.Info("POSTGRES_URL not set, survey results will not be archived")
		return nil, nil
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(&db_models.SurveyResult{}); err != nil {
		return nil, fmt.Errorf("migrate survey results: %w", err)
	}
	log.Info("result archive connected")
	return db, nil
}

func ClosePostgresql(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("closing database connection", zap.Error(err))
	} else {
		log.Info("PostgreSQL database connection closed successfully")
	}
}
