package weather

import "fmt"

// MissingCoordinatesError is returned when a resort cannot be queried because
// it has no coordinates.
type MissingCoordinatesError struct {
	ResortID string
}

func (e *MissingCoordinatesError) Error() string {
	return fmt.Sprintf("resort %q has no coordinates", e.ResortID)
}

// ProviderError reports a failed provider call. StatusCode is zero when no
// HTTP response was received.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", e.Provider, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s: provider error", e.Provider)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
