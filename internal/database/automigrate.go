package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"junkops-api/internal/domain"
)

// modelInfo holds information about a domain model and its table name
type modelInfo struct {
	model     interface{}
	tableName string
}

// migratedModels lists every domain model in dependency order so foreign
// key constraints resolve during creation.
func migratedModels() []modelInfo {
	return []modelInfo{
		{&domain.Lead{}, "leads"},
		{&domain.Customer{}, "customers"},
		{&domain.Employee{}, "employees"},
		{&domain.LeadContact{}, "lead_contacts"},
		{&domain.LeadActivity{}, "lead_activities"},
		{&domain.LeadNote{}, "lead_notes"},
		{&domain.LeadQualification{}, "lead_qualifications"},
		{&domain.LeadFollowUp{}, "lead_follow_ups"},
		{&domain.LeadConversion{}, "lead_conversions"},
		{&domain.LeadTag{}, "lead_tags"},
		{&domain.LeadTagAssignment{}, "lead_tag_assignments"},
		{&domain.Estimate{}, "estimates"},
		{&domain.EstimateItem{}, "estimate_items"},
		{&domain.Job{}, "jobs"},
		{&domain.SmsLog{}, "sms_logs"},
	}
}

// AutoMigrate runs GORM auto-migration for all domain models
func AutoMigrate(db *gorm.DB) error {
	infos := migratedModels()
	models := make([]interface{}, len(infos))
	for i, m := range infos {
		models[i] = m.model
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

// SafeAutoMigrate runs auto-migration model by model, logging whether each
// table was created or only updated.
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()
	models := migratedModels()

	logger.Info("Starting safe auto-migration",
		zap.Int("total_models", len(models)),
	)

	for _, m := range models {
		tableExists := migrator.HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", tableExists),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}

		logger.Info("Successfully migrated table",
			zap.String("table", m.tableName),
			zap.Bool("was_existing", tableExists),
		)
	}

	logger.Info("Safe auto-migration completed successfully",
		zap.Int("tables_migrated", len(models)),
	)
	return nil
}

// SafeAutoMigrateWithRetry runs SafeAutoMigrate with retry and linear backoff
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = SafeAutoMigrate(db, logger)
		if err == nil {
			return nil
		}

		if attempt < maxRetries {
			backoffDuration := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying...",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Duration("backoff", backoffDuration),
				zap.Error(err),
			)
			time.Sleep(backoffDuration)
		}
	}

	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
