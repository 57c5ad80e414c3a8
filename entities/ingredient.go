package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name            string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`

	Timestamp
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	newID(&i.ID)
	return nil
}
