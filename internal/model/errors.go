package model

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
	// ErrInvalidReference is returned when a write points at an unknown client or user.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrStorageUnavailable covers connectivity, timeouts and any unclassified database failure.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrSchemaIncomplete is returned on startup when required relations are missing.
	ErrSchemaIncomplete = errors.New("incomplete schema")

	ErrUserExists = fmt.Errorf("user already exists: %w", ErrConflict)
)
