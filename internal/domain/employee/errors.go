package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrVersionConflict  = errors.New("employee was modified concurrently")
)
