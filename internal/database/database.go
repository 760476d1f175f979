package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/antonbelau/folio/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase connects to Postgres when dsn is non-empty, otherwise to a
// local SQLite file, and migrates the schema. The hosted deployment uses
// Postgres; SQLite covers development and tests.
func NewDatabase(sqlitePath, dsn string) (*Database, error) {
	var dialector gorm.Dialector
	if dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(sqlitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.AdminUser{},
		&entities.Project{},
		&entities.CaseStudy{},
		&entities.Article{},
		&entities.Resume{},
		&entities.ContactLink{},
		&entities.ContactRequest{},
		&entities.SocialPost{},
		&entities.SiteSettings{},
		&entities.SiteProfile{},
		&entities.ProfileSkill{},
		&entities.ProfileExperience{},
		&entities.MDXDocument{},
		&entities.NotificationSettings{},
		&entities.NotificationLog{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedSingletons(); err != nil {
		return nil, fmt.Errorf("failed to seed singleton rows: %w", err)
	}

	if dsn != "" {
		log.Printf("Database initialized (postgres)")
	} else {
		log.Printf("Database initialized at %s", sqlitePath)
	}

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedSingletons ensures the singleton settings/profile rows exist so that
// read paths never have to handle a missing row. Notification settings are
// deliberately NOT seeded: the dispatcher treats the absent row as
// "unconfigured" and applies per-channel defaults.
func (d *Database) seedSingletons() error {
	var settings entities.SiteSettings
	result := d.DB.Where("id = ?", entities.SingletonID).First(&settings)
	if result.Error == gorm.ErrRecordNotFound {
		settings = entities.SiteSettings{ID: entities.SingletonID, SiteTitle: "Portfolio"}
		if err := d.DB.Create(&settings).Error; err != nil {
			return fmt.Errorf("failed to create site settings: %w", err)
		}
	} else if result.Error != nil {
		return result.Error
	}

	var profile entities.SiteProfile
	result = d.DB.Where("id = ?", entities.SingletonID).First(&profile)
	if result.Error == gorm.ErrRecordNotFound {
		profile = entities.SiteProfile{ID: entities.SingletonID}
		if err := d.DB.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to create site profile: %w", err)
		}
	} else if result.Error != nil {
		return result.Error
	}

	return nil
}
