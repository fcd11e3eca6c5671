package db

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mpwg/brixie/internal/models"
)

// setSyncColumns are the columns refreshed when a set is re-fetched from the
// catalog. Local user state (is_favorite, viewed_at, image_data) is never
// overwritten by a sync.
var setSyncColumns = []string{
	"name", "year", "theme_id", "theme_name",
	"num_parts", "image_url",
	"updated_at",
}

// SaveSets upserts sets by set number.
func (db *DB) SaveSets(sets []models.Set) error {
	if len(sets) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "set_num"}},
		DoUpdates: clause.AssignmentColumns(setSyncColumns),
	}).Create(&sets).Error
}

// GetAllSets returns every cached set, newest first.
func (db *DB) GetAllSets() ([]models.Set, error) {
	var sets []models.Set
	err := db.Order("year DESC, set_num").Find(&sets).Error
	return sets, err
}

// GetSet retrieves a set by its set number. Returns nil when absent.
func (db *DB) GetSet(setNum string) (*models.Set, error) {
	var set models.Set
	err := db.First(&set, "set_num = ?", setNum).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &set, nil
}

// DeleteAllSets removes every cached set. Used by the page-1 full refresh.
func (db *DB) DeleteAllSets() error {
	return db.Where("1 = 1").Delete(&models.Set{}).Error
}

// GetFavoriteSets returns all sets flagged as favorites.
func (db *DB) GetFavoriteSets() ([]models.Set, error) {
	var sets []models.Set
	err := db.Where("is_favorite = ?", true).
		Order("year DESC, set_num").
		Find(&sets).Error
	return sets, err
}

// SetFavorite updates the favorite flag of a single set.
func (db *DB) SetFavorite(setNum string, favorite bool) error {
	return db.Model(&models.Set{}).
		Where("set_num = ?", setNum).
		Update("is_favorite", favorite).Error
}

// GetSetsMissingThemeName returns cached sets whose denormalized theme name
// has not been populated yet.
func (db *DB) GetSetsMissingThemeName() ([]models.Set, error) {
	var sets []models.Set
	err := db.Where("theme_name IS NULL OR theme_name = ''").Find(&sets).Error
	return sets, err
}

// RecordSetView marks a set as viewed now.
func (db *DB) RecordSetView(setNum string) error {
	now := time.Now()
	return db.Model(&models.Set{}).
		Where("set_num = ?", setNum).
		Update("viewed_at", now).Error
}

// SaveSetImage stores a cached image blob for a set.
func (db *DB) SaveSetImage(setNum string, data []byte) error {
	return db.Model(&models.Set{}).
		Where("set_num = ?", setNum).
		Update("image_data", data).Error
}

// CountSets returns the number of cached sets.
func (db *DB) CountSets() (int64, error) {
	var count int64
	err := db.Model(&models.Set{}).Count(&count).Error
	return count, err
}
