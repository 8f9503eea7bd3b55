package storage

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kerem-kaynak/formstore/internal/entity"
	"gorm.io/gorm"
)

// CreateObject allocates a new object under the given service. The
// human-readable identifier is derived from the object's uuid and assigned
// before the row is returned; it never changes afterwards.
func CreateObject(db *gorm.DB, service *entity.Service) (*entity.Object, error) {
	id := uuid.New()
	object := &entity.Object{
		ID:        id,
		ServiceID: service.ID,
		HumanID:   fmt.Sprintf("obj-%s", id.String()[:8]),
	}

	if err := db.Create(object).Error; err != nil {
		return nil, fmt.Errorf("failed to create object for service %q: %w", service.Name, err)
	}

	return object, nil
}

// DeleteObject removes the object row only. Callers must have deleted the
// value rows referencing the object first.
func DeleteObject(db *gorm.DB, object *entity.Object) error {
	if err := db.Unscoped().Delete(&entity.Object{}, "id = ?", object.ID).Error; err != nil {
		return fmt.Errorf("failed to delete object %q: %w", object.HumanID, err)
	}
	return nil
}

// deleteObjectValues removes the object's rows from all seven value tables.
func deleteObjectValues(db *gorm.DB, object *entity.Object) error {
	for _, model := range entity.ValueModels() {
		if err := db.Unscoped().Where("object_id = ?", object.ID).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to delete values of object %q: %w", object.HumanID, err)
		}
	}
	return nil
}
