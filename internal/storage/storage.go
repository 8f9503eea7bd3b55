// Package storage implements the generic entity/attribute/value data layer:
// services (datasets), field definitions, objects (rows) and the seven
// kind-specific value tables. Every function takes the *gorm.DB to operate
// on, so callers can run the same code on the base handle or inside a
// transaction.
package storage

import "errors"

var (
	// ErrDuplicateServiceName is returned when a service is created with a
	// name that already exists.
	ErrDuplicateServiceName = errors.New("service name already exists")

	// ErrUnknownFormType is returned when a field declares a form type
	// outside the closed seven-kind set. This is a programming or
	// configuration error, not a retryable condition.
	ErrUnknownFormType = errors.New("unknown form type")
)
