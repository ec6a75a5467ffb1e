package forecast

import (
	"errors"
	"fmt"
)

// ErrUnknownAppliance is returned when the registry has no model entry
// for the requested appliance.
var ErrUnknownAppliance = errors.New("no model registered for appliance")

// ErrArtifactMissing is returned when the registered artifact path does
// not exist on disk.
var ErrArtifactMissing = errors.New("model artifact not found")

// ErrArtifactCorrupt is returned when an artifact exists but cannot be
// decoded or fails validation.
var ErrArtifactCorrupt = errors.New("model artifact corrupt")

// PredictionError wraps a failed forecast with the appliance and date it
// was requested for. It is not retried: the same feature vector fails
// the same way.
type PredictionError struct {
	Appliance string
	Date      string
	Err       error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("predict %s for %s: %v", e.Appliance, e.Date, e.Err)
}

func (e *PredictionError) Unwrap() error { return e.Err }
