package records

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is a denormalized reference record: type, level and reward labels
// are stored inline so display needs no further lookups.
type Activity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	ActivityName string    `gorm:"column:activity_name;not null" json:"activity_name"`
	ActivityAt   time.Time `gorm:"column:activity_at" json:"activity_at"`
	Institution  string    `gorm:"column:institution" json:"institution"`
	Description  string    `gorm:"column:description" json:"description"`
	TypeName     string    `gorm:"column:type_name" json:"type_name"`
	LevelName    string    `gorm:"column:level_name" json:"level_name"`
	RewardLevel  string    `gorm:"column:reward_level" json:"reward_level"`

	Images []*ActivityImage `gorm:"foreignKey:ActivityID" json:"images,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Activity) TableName() string { return "activity" }

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type ActivityImage struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ActivityID uuid.UUID `gorm:"type:uuid;not null;index" json:"activity_id"`
	ImageURL   string    `gorm:"column:image_url;not null" json:"image_url"`
}

func (ActivityImage) TableName() string { return "activity_image" }

func (i *ActivityImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
