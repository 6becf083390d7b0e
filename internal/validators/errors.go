package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMissingProjectID = errors.New("project id is required")
	ErrInvalidLatitude  = errors.New("latitude out of range")
	ErrInvalidLongitude = errors.New("longitude out of range")
	ErrNegativeDuration = errors.New("duration cannot be negative")
	ErrCaptureInFuture  = errors.New("capture timestamp lies in the future")
)
