package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the top-level container for one ingested collection. Every
// Field definition and Object row created during an ingestion run belongs
// to exactly one Service, and a Service is the unit of bulk deletion.
type Service struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_service_name" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Fields      []Field   `gorm:"foreignKey:ServiceID" json:"fields"`
	Objects     []Object  `gorm:"foreignKey:ServiceID" json:"objects"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
