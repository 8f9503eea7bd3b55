package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// One table per primitive value kind. Each row binds a single scalar to an
// (object, field) pair; the storage layer guarantees rows only land in the
// table matching the field's FormType.

type CharForm struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ObjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"object_id"`
	FieldID  uuid.UUID `gorm:"type:uuid;not null;index" json:"field_id"`
	Value    string    `gorm:"type:varchar(255)" json:"value"`
}

type TextForm struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ObjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"object_id"`
	FieldID  uuid.UUID `gorm:"type:uuid;not null;index" json:"field_id"`
	Value    string    `gorm:"type:text" json:"value"`
}

type IntegerForm struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ObjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"object_id"`
	FieldID  uuid.UUID `gorm:"type:uuid;not null;index" json:"field_id"`
	Value    int64     `gorm:"type:bigint" json:"value"`
}

type FloatForm struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ObjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"object_id"`
	FieldID  uuid.UUID `gorm:"type:uuid;not null;index" json:"field_id"`
	Value    float64   `gorm:"type:double precision" json:"value"`
}

type BooleanForm struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ObjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"object_id"`
	FieldID  uuid.UUID `gorm:"type:uuid;not null;index" json:"field_id"`
	Value    bool      `gorm:"type:boolean" json:"value"`
}

// DateForm values are canonical YYYY-MM-DD strings. Normalization from
// source formats happens during extraction, never here.
type DateForm struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ObjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"object_id"`
	FieldID  uuid.UUID `gorm:"type:uuid;not null;index" json:"field_id"`
	Value    string    `gorm:"type:varchar(10)" json:"value"`
}

type URLForm struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ObjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"object_id"`
	FieldID  uuid.UUID `gorm:"type:uuid;not null;index" json:"field_id"`
	Value    string    `gorm:"type:varchar(2048)" json:"value"`
}

func (f *CharForm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (f *TextForm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (f *IntegerForm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (f *FloatForm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (f *BooleanForm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (f *DateForm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (f *URLForm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// ValueModels lists the seven value tables in a stable order. Deletion
// paths iterate this list so the cascade covers every kind.
func ValueModels() []interface{} {
	return []interface{}{
		&CharForm{},
		&TextForm{},
		&IntegerForm{},
		&FloatForm{},
		&BooleanForm{},
		&DateForm{},
		&URLForm{},
	}
}
