package models

// Common constants used across the application
const (
	// UnknownValue is shown in place of model metadata the table leaves empty
	UnknownValue = "UNKNOWN"
)
