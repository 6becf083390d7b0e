package validators

import (
	"context"
	"fmt"
	"time"

	"github.com/rmartell/go-site-sync/models"
)

const (
	FieldProjectID  = "project_id"
	FieldGPS        = "gps"
	FieldDuration   = "duration"
	FieldCapturedAt = "captured_at"
)

// clockSkewTolerance allows for devices whose clock runs slightly ahead of
// the agent's.
const clockSkewTolerance = 5 * time.Minute

type CaptureMetadataValidator struct {
}

func NewCaptureMetadataValidator() Validator {
	return &CaptureMetadataValidator{}
}

func (v *CaptureMetadataValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CaptureMetadata:
		return v.validateMetadata(ctx, value, fields...)
	case *models.CaptureMetadata:
		return v.validateMetadata(ctx, *value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *CaptureMetadataValidator) validateMetadata(_ context.Context, meta models.CaptureMetadata, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldProjectID, FieldGPS, FieldDuration, FieldCapturedAt}
	}

	for _, field := range fields {
		switch field {
		case FieldProjectID:
			if meta.ProjectID == "" {
				return ErrMissingProjectID
			}
		case FieldGPS:
			if err := validateGPS(meta.GPS); err != nil {
				return err
			}
		case FieldDuration:
			if meta.Duration != nil && *meta.Duration < 0 {
				return ErrNegativeDuration
			}
		case FieldCapturedAt:
			if !meta.CapturedAt.IsZero() && meta.CapturedAt.After(time.Now().Add(clockSkewTolerance)) {
				return ErrCaptureInFuture
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func validateGPS(gps *models.GPS) error {
	if gps == nil {
		return nil
	}
	if gps.Latitude < -90 || gps.Latitude > 90 {
		return fmt.Errorf("%w: %f", ErrInvalidLatitude, gps.Latitude)
	}
	if gps.Longitude < -180 || gps.Longitude > 180 {
		return fmt.Errorf("%w: %f", ErrInvalidLongitude, gps.Longitude)
	}
	return nil
}
