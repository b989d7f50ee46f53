package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rambackend/user-tasks-api/internal/config"
	"github.com/rambackend/user-tasks-api/internal/models"
)

var DB *gorm.DB

// Connect opens the database connection configured by cfg. TranslateError is
// enabled so unique constraint failures surface as gorm.ErrDuplicatedKey
// regardless of the driver.
func Connect(cfg config.Config) error {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.Name,
		)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Name,
		)
		dialector = postgres.Open(dsn)
	default:
		return fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return nil
}

// Migrate creates / updates the schema for all models.
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB runs migrations against an explicit connection (used for tests).
func MigrateDB(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Task{}, "AssignedUsers", &models.TaskAssignment{}); err != nil {
		return fmt.Errorf("failed to set up task assignment join table: %w", err)
	}
	if err := db.SetupJoinTable(&models.User{}, "Tasks", &models.TaskAssignment{}); err != nil {
		return fmt.Errorf("failed to set up user tasks join table: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
