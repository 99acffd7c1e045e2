package constants

import "time"

// Default timeouts and limits used throughout the application
const (
	// Recognition timeouts
	CellRecognitionTimeout   = 10 * time.Second
	RegionRecognitionTimeout = 30 * time.Second

	// Decode and overall run timeouts
	DecodeTimeout  = 15 * time.Second
	DefaultTimeout = 2 * time.Minute

	// DefaultConcurrency is the number of cells recognized at once
	DefaultConcurrency = 4
	// MaxConcurrency caps configured concurrency; one per cell is enough
	MaxConcurrency = 16
)

// GetTimeout returns a timeout duration based on the operation type
func GetTimeout(operation string) time.Duration {
	switch operation {
	case "cell", "cells":
		return CellRecognitionTimeout
	case "region":
		return RegionRecognitionTimeout
	case "decode":
		return DecodeTimeout
	default:
		return DefaultTimeout
	}
}
