package design

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColorTheme struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"column:name;not null;uniqueIndex" json:"name" yaml:"name"`
	PrimaryColor    string    `gorm:"column:primary_color;not null" json:"primary_color" yaml:"primary"`
	SecondaryColor  string    `gorm:"column:secondary_color;not null" json:"secondary_color" yaml:"secondary"`
	BackgroundColor string    `gorm:"column:background_color;not null" json:"background_color" yaml:"background"`

	CreatedAt time.Time `gorm:"not null" json:"created_at" yaml:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at" yaml:"-"`
}

func (ColorTheme) TableName() string { return "color_theme" }

func (c *ColorTheme) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type FontTheme struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"column:name;not null;uniqueIndex" json:"name" yaml:"name"`
	FontFamily string    `gorm:"column:font_family;not null" json:"font_family" yaml:"family"`
	FontURL    string    `gorm:"column:font_url" json:"font_url" yaml:"url"`
	Category   string    `gorm:"column:category" json:"category" yaml:"category"`
	IsActive   bool      `gorm:"column:is_active;not null;index" json:"is_active" yaml:"active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at" yaml:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at" yaml:"-"`
}

func (FontTheme) TableName() string { return "font_theme" }

func (f *FontTheme) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
