package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mpwg/brixie/internal/models"
)

// UpsertSyncStatus records the outcome of a sync attempt for a feed.
// One row is kept per feed key; repeated writes overwrite it.
func (db *DB) UpsertSyncStatus(status models.SyncStatus) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "feed"}},
		DoUpdates: clause.AssignmentColumns([]string{"synced_at", "success", "item_count", "updated_at"}),
	}).Create(&status).Error
}

// GetSyncStatus retrieves the last sync attempt for a feed.
// Returns nil when the feed has never synced.
func (db *DB) GetSyncStatus(feed string) (*models.SyncStatus, error) {
	var status models.SyncStatus
	err := db.First(&status, "feed = ?", feed).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

// GetAllSyncStatuses retrieves the last sync attempt for every feed.
func (db *DB) GetAllSyncStatuses() (map[string]models.SyncStatus, error) {
	var statuses []models.SyncStatus
	if err := db.Find(&statuses).Error; err != nil {
		return nil, err
	}

	result := make(map[string]models.SyncStatus, len(statuses))
	for _, s := range statuses {
		result[s.Feed] = s
	}
	return result, nil
}
