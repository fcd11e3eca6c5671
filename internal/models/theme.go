package models

import "time"

// Theme represents a LEGO theme, optionally nested under a parent theme.
// Parent linkage is by identifier only; a dangling ParentID is tolerated
// and such a theme is treated as a root by consumers.
type Theme struct {
	ID       int     `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"size:255;index" json:"name"`
	ParentID *int    `gorm:"index" json:"parent_id"`
	SetCount *int    `json:"set_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Theme) TableName() string {
	return "themes"
}

// IsRoot reports whether the theme has no parent.
func (t *Theme) IsRoot() bool {
	return t.ParentID == nil
}
