// Package models defines the core data structures for Brixie.
package models

import (
	"time"
)

// Set represents one LEGO set from the Rebrickable catalog.
type Set struct {
	SetNum string `gorm:"primaryKey;size:20" json:"set_num"` // Rebrickable set number, e.g. "6989-1"
	Name   string `gorm:"size:255;index" json:"name"`
	Year   int    `gorm:"index" json:"year"`

	// Theme linkage. ThemeName is denormalized from the themes table so the
	// set list renders without a join; nil means "not yet known", not an error.
	ThemeID   int     `gorm:"index" json:"theme_id"`
	ThemeName *string `gorm:"size:255" json:"theme_name"`

	NumParts int    `gorm:"default:0" json:"num_parts"`
	ImageURL string `gorm:"size:500" json:"set_img_url"`

	// Local user state, preserved across catalog syncs.
	IsFavorite bool       `gorm:"default:false;index" json:"is_favorite"`
	ViewedAt   *time.Time `json:"viewed_at"`
	ImageData  []byte     `gorm:"type:blob" json:"-"` // cached image for offline display

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Set) TableName() string {
	return "sets"
}

// HasThemeName reports whether the denormalized theme name is populated.
func (s *Set) HasThemeName() bool {
	return s.ThemeName != nil && *s.ThemeName != ""
}

// DisplayTheme returns the theme name or a placeholder when unknown.
func (s *Set) DisplayTheme() string {
	if s.HasThemeName() {
		return *s.ThemeName
	}
	return "unknown"
}
