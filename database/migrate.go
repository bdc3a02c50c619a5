package database

import (
	"context"
	"fmt"

	"github.com/employee-directory/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const copyBatchSize = 200

// Models lists every table the API owns.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Employee{},
	}
}

// Migrate creates the schema, if any, and brings the tables and their
// unique indexes up to date.
func Migrate(ctx context.Context, db *gorm.DB, schemaName string) error {
	db = db.WithContext(ctx)
	if schemaName != "" {
		if err := db.Exec(`CREATE SCHEMA IF NOT EXISTS "` + schemaName + `"`).Error; err != nil {
			return fmt.Errorf("failed to create schema %s: %w", schemaName, err)
		}
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// CopyData copies users and employees from source to target. Rows whose id
// or unique keys already exist in target are skipped.
func CopyData(ctx context.Context, source, target *gorm.DB, log *zap.Logger) error {
	log.Info("starting data copy")

	var users []models.User
	copied := 0
	err := source.WithContext(ctx).FindInBatches(&users, copyBatchSize, func(tx *gorm.DB, batch int) error {
		if err := target.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error; err != nil {
			return fmt.Errorf("failed to copy users batch %d: %w", batch, err)
		}
		copied += len(users)
		return nil
	}).Error
	if err != nil {
		return err
	}
	log.Info("copied users", zap.Int("count", copied))

	var employees []models.Employee
	copied = 0
	err = source.WithContext(ctx).FindInBatches(&employees, copyBatchSize, func(tx *gorm.DB, batch int) error {
		if err := target.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&employees).Error; err != nil {
			return fmt.Errorf("failed to copy employees batch %d: %w", batch, err)
		}
		copied += len(employees)
		return nil
	}).Error
	if err != nil {
		return err
	}
	log.Info("copied employees", zap.Int("count", copied))

	return nil
}
