package portfolio

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Portfolio is a student's composed document. Sections are owned and cascade
// on delete; themes are shared rows referenced by id.
type Portfolio struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Status      string    `gorm:"column:status;not null;index" json:"status"`

	CoverImageURL *string `gorm:"column:cover_image_url" json:"cover_image_url,omitempty"`
	// SnapshotURL is the last successfully captured thumbnail. It is never
	// refreshed automatically.
	SnapshotURL *string `gorm:"column:snapshot_url" json:"snapshot_url,omitempty"`

	TemplateID   *uuid.UUID `gorm:"type:uuid;column:template_id;index" json:"template_id,omitempty"`
	ColorThemeID *uuid.UUID `gorm:"type:uuid;column:color_theme_id;index" json:"color_theme_id,omitempty"`
	FontThemeID  *uuid.UUID `gorm:"type:uuid;column:font_theme_id;index" json:"font_theme_id,omitempty"`

	Sections []*Section `gorm:"foreignKey:PortfolioID" json:"sections,omitempty"`

	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Portfolio) TableName() string { return "portfolio" }

func (p *Portfolio) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	return nil
}
