package storage

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kerem-kaynak/formstore/internal/entity"
	"gorm.io/gorm"
)

// ValueRef identifies a stored value row: which kind's table it landed in
// and the row id within that table.
type ValueRef struct {
	FormType entity.FormType
	ID       uuid.UUID
}

// WriteValue appends one row to the value table matching the field's form
// type. The switch is exhaustive over the closed seven-kind set; a form
// type outside it fails with ErrUnknownFormType. The value must already be
// in the kind's native Go representation (dates as canonical YYYY-MM-DD
// strings) — conversion is the caller's job.
//
// Repeated writes for the same (object, field) pair append additional rows;
// the store itself does not implement overwrite semantics.
func WriteValue(db *gorm.DB, object *entity.Object, field *entity.Field, value interface{}) (*ValueRef, error) {
	switch field.FormType {
	case entity.FormTypeChar:
		v, err := stringValue(field, value)
		if err != nil {
			return nil, err
		}
		row := &entity.CharForm{ObjectID: object.ID, FieldID: field.ID, Value: v}
		return createValueRow(db, field, row, &row.ID)

	case entity.FormTypeText:
		v, err := stringValue(field, value)
		if err != nil {
			return nil, err
		}
		row := &entity.TextForm{ObjectID: object.ID, FieldID: field.ID, Value: v}
		return createValueRow(db, field, row, &row.ID)

	case entity.FormTypeInteger:
		v, ok := value.(int64)
		if !ok {
			return nil, fmt.Errorf("field %q expects an int64 value, got %T", field.Name, value)
		}
		row := &entity.IntegerForm{ObjectID: object.ID, FieldID: field.ID, Value: v}
		return createValueRow(db, field, row, &row.ID)

	case entity.FormTypeFloat:
		v, ok := value.(float64)
		if !ok {
			return nil, fmt.Errorf("field %q expects a float64 value, got %T", field.Name, value)
		}
		row := &entity.FloatForm{ObjectID: object.ID, FieldID: field.ID, Value: v}
		return createValueRow(db, field, row, &row.ID)

	case entity.FormTypeBoolean:
		v, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("field %q expects a bool value, got %T", field.Name, value)
		}
		row := &entity.BooleanForm{ObjectID: object.ID, FieldID: field.ID, Value: v}
		return createValueRow(db, field, row, &row.ID)

	case entity.FormTypeDate:
		v, err := stringValue(field, value)
		if err != nil {
			return nil, err
		}
		row := &entity.DateForm{ObjectID: object.ID, FieldID: field.ID, Value: v}
		return createValueRow(db, field, row, &row.ID)

	case entity.FormTypeURL:
		v, err := stringValue(field, value)
		if err != nil {
			return nil, err
		}
		row := &entity.URLForm{ObjectID: object.ID, FieldID: field.ID, Value: v}
		return createValueRow(db, field, row, &row.ID)

	default:
		return nil, fmt.Errorf("field %q declares %q: %w", field.Name, field.FormType, ErrUnknownFormType)
	}
}

func stringValue(field *entity.Field, value interface{}) (string, error) {
	v, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q expects a string value, got %T", field.Name, value)
	}
	return v, nil
}

func createValueRow(db *gorm.DB, field *entity.Field, row interface{}, id *uuid.UUID) (*ValueRef, error) {
	if err := db.Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to write %s value for field %q: %w", field.FormType, field.Name, err)
	}
	return &ValueRef{FormType: field.FormType, ID: *id}, nil
}
