package portfolio

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BlockTypeImage = "image"
	BlockTypeText  = "text"
)

// Block holds one opaque content payload. Content is a tagged union keyed by
// "type" (activity, working, profile) and may be stored either as an object
// or as a JSON string wrapping the object.
type Block struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"section_id"`
	BlockType  string    `gorm:"column:block_type;not null" json:"block_type"`
	OrderIndex int       `gorm:"column:order_index;not null;index" json:"order_index"`

	Content datatypes.JSON `gorm:"column:content" json:"content,omitempty"`
	Style   datatypes.JSON `gorm:"column:style" json:"style,omitempty"`

	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Block) TableName() string { return "portfolio_block" }

func (b *Block) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *Block) OrderID() uuid.UUID { return b.ID }
func (b *Block) Order() int         { return b.OrderIndex }
func (b *Block) SetOrder(i int)     { b.OrderIndex = i }
