package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Object is one ingested record within a Service, comparable to a row in
// a conventional table. Its HumanID is assigned at creation time and never
// changes afterwards.
type Object struct {
	gorm.Model
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"service_id"`
	HumanID   string    `gorm:"type:varchar(100);not null" json:"human_id"`
}

func (o *Object) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
