package storage

import (
	"fmt"

	"github.com/kerem-kaynak/formstore/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResolveOrCreateField returns the field identified by (service, name,
// description, formType), creating it if it does not exist yet. The insert
// uses ON CONFLICT DO NOTHING against the composite unique index, so the
// get-or-create is atomic under concurrent ingestion and calling it
// repeatedly with the same arguments never grows the catalog.
//
// The second return value reports whether this call created the field,
// so callers can assert which outcome occurred.
func ResolveOrCreateField(db *gorm.DB, service *entity.Service, name, description string, formType entity.FormType) (*entity.Field, bool, error) {
	field := &entity.Field{
		ServiceID:   service.ID,
		Name:        name,
		Description: description,
		FormType:    formType,
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(field)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to create field %q: %w", name, result.Error)
	}
	if result.RowsAffected > 0 {
		return field, true, nil
	}

	var existing entity.Field
	err := db.Where(
		"service_id = ? AND name = ? AND description = ? AND form_type = ?",
		service.ID, name, description, formType,
	).First(&existing).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to resolve existing field %q: %w", name, err)
	}

	return &existing, false, nil
}
