package model

import "errors"

var (
	// ErrNotFound is returned when an entity is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when an entity already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when an entity is not valid.
	ErrNotValid = errors.New("not valid")
)
