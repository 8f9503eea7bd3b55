package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FormType identifies which value table a field's entries are stored in.
// The set is closed: every write site switches exhaustively over these
// seven kinds, so adding a kind is a compile-visible change.
type FormType string

const (
	FormTypeChar    FormType = "CHAR"
	FormTypeText    FormType = "TEXT"
	FormTypeInteger FormType = "INTEGER"
	FormTypeFloat   FormType = "FLOAT"
	FormTypeBoolean FormType = "BOOLEAN"
	FormTypeDate    FormType = "DATE"
	FormTypeURL     FormType = "URL"
)

// Field is a named, typed attribute definition scoped to a Service. The
// composite unique index makes (service, name, description, form_type)
// identify at most one row, which is what the idempotent resolve-or-create
// in the storage layer relies on. Fields are immutable once created and
// are only removed together with their Service.
type Field struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_field_identity" json:"service_id"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_field_identity" json:"name"`
	Description string    `gorm:"type:varchar(255);uniqueIndex:idx_field_identity" json:"description"`
	FormType    FormType  `gorm:"type:varchar(16);not null;uniqueIndex:idx_field_identity" json:"form_type"`
}

func (f *Field) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
