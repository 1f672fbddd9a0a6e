package solver

import "errors"

var (
	// ErrNoContainers is returned when no container capacities are supplied.
	ErrNoContainers = errors.New("at least one container capacity is required")
	// ErrInvalidCapacity is returned when a container capacity is zero or negative.
	ErrInvalidCapacity = errors.New("container capacities must be positive")
	// ErrInvalidItem is returned when an item has a non-positive weight or value.
	ErrInvalidItem = errors.New("item weight and value must be positive")
	// ErrDuplicateItemName is returned when two items share a name within one solve call.
	ErrDuplicateItemName = errors.New("item names must be unique per solve call")
)
