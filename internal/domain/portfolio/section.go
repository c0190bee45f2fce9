package portfolio

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Section struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PortfolioID uuid.UUID `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	SectionKey  string    `gorm:"column:section_key;index" json:"section_key"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	OrderIndex  int       `gorm:"column:order_index;not null;index" json:"order_index"`
	IsEnabled   bool      `gorm:"column:is_enabled;not null" json:"is_enabled"`
	LayoutType  string    `gorm:"column:layout_type;not null" json:"layout_type"`

	Style datatypes.JSON `gorm:"column:style" json:"style,omitempty"`

	Blocks []*Block `gorm:"foreignKey:SectionID" json:"blocks,omitempty"`

	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Section) TableName() string { return "portfolio_section" }

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *Section) OrderID() uuid.UUID { return s.ID }
func (s *Section) Order() int         { return s.OrderIndex }
func (s *Section) SetOrder(i int)     { s.OrderIndex = i }
func (s *Section) SetEnabled(v bool)  { s.IsEnabled = v }
