package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mpwg/brixie/internal/models"
)

// SaveThemes upserts themes by identifier.
func (db *DB) SaveThemes(themes []models.Theme) error {
	if len(themes) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "parent_id", "set_count", "updated_at"}),
	}).Create(&themes).Error
}

// GetAllThemes returns every cached theme ordered by name.
func (db *DB) GetAllThemes() ([]models.Theme, error) {
	var themes []models.Theme
	err := db.Order("name").Find(&themes).Error
	return themes, err
}

// GetTheme retrieves a theme by identifier. Returns nil when absent.
func (db *DB) GetTheme(id int) (*models.Theme, error) {
	var theme models.Theme
	err := db.First(&theme, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &theme, nil
}

// DeleteAllThemes removes every cached theme. Used by the page-1 full refresh.
func (db *DB) DeleteAllThemes() error {
	return db.Where("1 = 1").Delete(&models.Theme{}).Error
}

// CountThemes returns the number of cached themes.
func (db *DB) CountThemes() (int64, error) {
	var count int64
	err := db.Model(&models.Theme{}).Count(&count).Error
	return count, err
}
