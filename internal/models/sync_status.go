package models

import "time"

// SyncStatus records the most recent synchronization attempt for one feed.
// Exactly one row is kept per feed key; writes upsert, never append.
type SyncStatus struct {
	Feed      string    `gorm:"primaryKey;size:50" json:"feed"`
	SyncedAt  time.Time `json:"synced_at"`
	Success   bool      `json:"success"`
	ItemCount int       `gorm:"default:0" json:"item_count"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (SyncStatus) TableName() string {
	return "sync_statuses"
}

// Feed keys. These tags are read by anything displaying "last synced"
// status, so they must not change.
const (
	FeedSets       = "sets"
	FeedThemes     = "themes"
	FeedSearch     = "search"
	FeedSetDetails = "setDetails"
)
