package storage

import (
	"fmt"

	"github.com/kerem-kaynak/formstore/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateService creates a new service row. Name uniqueness is enforced by
// the database index, so concurrent creates of the same name cannot both
// succeed: the loser gets ErrDuplicateServiceName and no partial state.
func CreateService(db *gorm.DB, name, description string) (*entity.Service, error) {
	service := &entity.Service{
		Name:        name,
		Description: description,
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(service)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create service %q: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("service %q: %w", name, ErrDuplicateServiceName)
	}

	return service, nil
}

// GetServiceByName looks a service up by its unique name.
func GetServiceByName(db *gorm.DB, name string) (*entity.Service, error) {
	var service entity.Service
	if err := db.Where("name = ?", name).First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// DeleteService removes a service and everything it owns. Deletion runs in
// reverse creation order so no dangling references are left behind: value
// rows for each object first, then the objects, then the field definitions,
// then the service row itself.
func DeleteService(db *gorm.DB, service *entity.Service) error {
	var objects []entity.Object
	if err := db.Where("service_id = ?", service.ID).Find(&objects).Error; err != nil {
		return fmt.Errorf("failed to list objects of service %q: %w", service.Name, err)
	}

	for i := range objects {
		if err := deleteObjectValues(db, &objects[i]); err != nil {
			return err
		}
		if err := DeleteObject(db, &objects[i]); err != nil {
			return err
		}
	}

	if err := db.Unscoped().Where("service_id = ?", service.ID).Delete(&entity.Field{}).Error; err != nil {
		return fmt.Errorf("failed to delete fields of service %q: %w", service.Name, err)
	}

	if err := db.Unscoped().Delete(&entity.Service{}, "id = ?", service.ID).Error; err != nil {
		return fmt.Errorf("failed to delete service %q: %w", service.Name, err)
	}

	return nil
}

// DeleteAll wipes every service with the same ordered cascade. Meant for
// full environment resets between runs, never as part of normal ingestion.
func DeleteAll(db *gorm.DB) error {
	for _, model := range entity.ValueModels() {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("failed to delete value rows: %w", err)
		}
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&entity.Field{}).Error; err != nil {
		return fmt.Errorf("failed to delete fields: %w", err)
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&entity.Object{}).Error; err != nil {
		return fmt.Errorf("failed to delete objects: %w", err)
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&entity.Service{}).Error; err != nil {
		return fmt.Errorf("failed to delete services: %w", err)
	}
	return nil
}
