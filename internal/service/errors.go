package service

import "errors"

var (
	// ErrConflict rejects a climate start while a climate mode is already active.
	ErrConflict = errors.New("conflicting climate mode active")
	// ErrNotActive rejects a stop for a mode that is not running.
	ErrNotActive = errors.New("climate mode not active")
	// ErrDisabled is returned for systems switched off in configuration.
	ErrDisabled = errors.New("system disabled")
	// ErrInvalidSystem is returned for anything but cooling or heating.
	ErrInvalidSystem = errors.New("invalid climate system: must be cooling or heating")
	// ErrInvalidFilter wraps every rejected journal query.
	ErrInvalidFilter = errors.New("invalid event filter")
)
