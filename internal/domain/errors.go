package domain

import (
	"errors"
	"fmt"
)

// InvalidBuildingDataError reports malformed input for a single building:
// non-positive area, negative EUI, or a missing required target. Raised eagerly
// before computation, never silently coerced to zero.
type InvalidBuildingDataError struct {
	BuildingID string
	Field      string
	Reason     string
}

func (e *InvalidBuildingDataError) Error() string {
	return fmt.Sprintf("invalid building data for %s: %s %s", e.BuildingID, e.Field, e.Reason)
}

// ErrorKind classifies a per-building failure for portfolio reporting.
type ErrorKind string

const (
	ErrorKindInvalidData ErrorKind = "invalid_data"
	ErrorKindAnalysis    ErrorKind = "analysis_failed"
)

// BuildingError records a per-building failure without aborting a portfolio run.
type BuildingError struct {
	BuildingID string    `json:"building_id"`
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
}

// NewBuildingError classifies err and builds the portfolio-level error record.
func NewBuildingError(buildingID string, err error) BuildingError {
	kind := ErrorKindAnalysis
	var invalid *InvalidBuildingDataError
	if errors.As(err, &invalid) {
		kind = ErrorKindInvalidData
	}
	return BuildingError{BuildingID: buildingID, Kind: kind, Message: err.Error()}
}
