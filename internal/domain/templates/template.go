package templates

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Template is admin-authored and immutable from a portfolio's point of view.
// Forking copies its sections and blocks; nothing references back.
type Template struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name" validate:"required,notblank,max=50"`
	Description string    `gorm:"column:description" json:"description" validate:"max=100"`
	Thumbnail   *string   `gorm:"column:thumbnail" json:"thumbnail,omitempty" validate:"omitempty,url,imageurl"`
	Category    string    `gorm:"column:category;index" json:"category,omitempty"`

	Links []*TemplateSectionLink `gorm:"foreignKey:TemplateID" json:"links,omitempty" validate:"min=2,dive"`

	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Template) TableName() string { return "template" }

func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type TemplateSectionLink struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	TemplateID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"template_id"`
	TemplateSectionID uuid.UUID        `gorm:"type:uuid;not null;index" json:"template_section_id"`
	OrderIndex        int              `gorm:"column:order_index;not null" json:"order_index"`
	Section           *TemplateSection `gorm:"foreignKey:TemplateSectionID" json:"section,omitempty" validate:"required"`
}

func (TemplateSectionLink) TableName() string { return "template_section_link" }

func (l *TemplateSectionLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type TemplateSection struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name" validate:"required,max=100"`
	SectionKey  string    `gorm:"column:section_key;index" json:"section_key"`
	Description string    `gorm:"column:description" json:"description"`
	LayoutType  string    `gorm:"column:layout_type;not null" json:"layout_type"`

	Blocks []*TemplateBlock `gorm:"foreignKey:TemplateSectionID" json:"blocks,omitempty" validate:"dive"`
}

func (TemplateSection) TableName() string { return "template_section" }

func (s *TemplateSection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type TemplateBlock struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TemplateSectionID uuid.UUID `gorm:"type:uuid;not null;index" json:"template_section_id"`
	Name              string    `gorm:"column:name" json:"name"`
	BlockType         string    `gorm:"column:block_type;not null" json:"block_type" validate:"oneof=image text"`
	OrderIndex        int       `gorm:"column:order_index;not null" json:"order_index"`

	DefaultContent datatypes.JSON `gorm:"column:default_content" json:"default_content,omitempty"`
	// DefaultStyle may carry borderRadius / border_radius; a full radius marks
	// the circular image treatment.
	DefaultStyle datatypes.JSON `gorm:"column:default_style" json:"default_style,omitempty"`
}

func (TemplateBlock) TableName() string { return "template_block" }

func (b *TemplateBlock) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
