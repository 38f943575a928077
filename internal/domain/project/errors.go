package project

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectClosed is returned for writes that would add to a closed project
	ErrProjectClosed = errors.New("project is closed")

	ErrInvalidProject = errors.New("invalid project")
	ErrInvalidState   = errors.New("invalid project state")

	// ErrOpenDistributions is returned when closing a project that still has planned or in-progress distributions
	ErrOpenDistributions = errors.New("project has open distributions")

	// ErrVersionConflict indicates an optimistic locking conflict
	ErrVersionConflict = errors.New("version conflict: project was modified")
)
