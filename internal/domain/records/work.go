package records

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Work struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	WorkingName string    `gorm:"column:working_name;not null" json:"working_name"`
	Status      string    `gorm:"column:status" json:"status"`
	WorkingAt   time.Time `gorm:"column:working_at" json:"working_at"`
	Description string    `gorm:"column:description" json:"description"`
	TypeName    string    `gorm:"column:type_name" json:"type_name"`

	Images []*WorkImage `gorm:"foreignKey:WorkID" json:"images,omitempty"`
	Links  []*WorkLink  `gorm:"foreignKey:WorkID" json:"links,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Work) TableName() string { return "work" }

func (w *Work) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

type WorkImage struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkID          uuid.UUID `gorm:"type:uuid;not null;index" json:"work_id"`
	WorkingImageURL string    `gorm:"column:working_image_url;not null" json:"working_image_url"`
}

func (WorkImage) TableName() string { return "work_image" }

func (i *WorkImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type WorkLink struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkID      uuid.UUID `gorm:"type:uuid;not null;index" json:"work_id"`
	WorkingLink string    `gorm:"column:working_link;not null" json:"working_link"`
}

func (WorkLink) TableName() string { return "work_link" }

func (l *WorkLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
