package domain

import "errors"

var (
	ErrNoDrivers          = errors.New("no drivers available")
	ErrNoPickupPoints     = errors.New("no pickup points")
	ErrEmptyInput         = errors.New("empty input")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidWeights     = errors.New("invalid weights")
	ErrInvalidOptions     = errors.New("invalid options")
	ErrInvalidVolume      = errors.New("invalid volume")
	ErrInvalidCapacity    = errors.New("invalid capacity")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrDuplicateID        = errors.New("duplicate id")
	ErrDriverNotFound     = errors.New("driver not found")
	ErrNotFound           = errors.New("not found")
)
