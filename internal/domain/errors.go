package domain

import "errors"

var (
	// ErrEmptyComplaintText is returned when a submission has no text after trimming.
	ErrEmptyComplaintText = errors.New("complaint text is required")

	// ErrInvalidSettings is returned for settings outside the supported values.
	ErrInvalidSettings = errors.New("invalid settings")
)
