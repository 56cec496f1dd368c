package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// PublicHTTPErrorType is the machine readable type of an error response.
type PublicHTTPErrorType string

const (
	PublicHTTPErrorTypeGeneric                      PublicHTTPErrorType = "generic"
	PublicHTTPErrorTypeINVALIDSEED                  PublicHTTPErrorType = "INVALID_SEED"
	PublicHTTPErrorTypeUNKNOWNNETWORK               PublicHTTPErrorType = "UNKNOWN_NETWORK"
	PublicHTTPErrorTypeNOSEEDSTORED                 PublicHTTPErrorType = "NO_SEED_STORED"
	PublicHTTPErrorTypeSESSIONBUSY                  PublicHTTPErrorType = "SESSION_BUSY"
	PublicHTTPErrorTypeINVALIDTRANSITION            PublicHTTPErrorType = "INVALID_TRANSITION"
	PublicHTTPErrorTypeSESSIONMATERIALIZATIONFAILED PublicHTTPErrorType = "SESSION_MATERIALIZATION_FAILED"
	PublicHTTPErrorTypeKEYCORRUPTED                 PublicHTTPErrorType = "KEY_CORRUPTED"
	PublicHTTPErrorTypeVAULTCORRUPTED               PublicHTTPErrorType = "VAULT_CORRUPTED"
	PublicHTTPErrorTypeCONFIRMATIONREQUIRED         PublicHTTPErrorType = "CONFIRMATION_REQUIRED"
)

// PublicHTTPError is the body of every error response
type PublicHTTPError struct {
	// HTTP status code returned for the error
	// Required: true
	Code *int64 `json:"status"`

	// More detailed, human-readable, optional explanation of the error
	Detail string `json:"detail,omitempty"`

	// Short, human-readable description of the error
	// Required: true
	Title *string `json:"title"`

	// Type of error returned, should be used for client-side error handling
	// Required: true
	Type *PublicHTTPErrorType `json:"type"`
}

// Validate validates this public HTTP error
func (m *PublicHTTPError) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("status", "body", m.Code); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("title", "body", m.Title); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("type", "body", m.Type); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// MarshalBinary interface implementation
func (m *PublicHTTPError) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}

// HTTPValidationErrorDetail describes one failed field of a request body
type HTTPValidationErrorDetail struct {
	// Error describing field validation failure
	// Required: true
	Error *string `json:"error"`

	// Indicates how the invalid field was provided
	// Required: true
	In *string `json:"in"`

	// Key of field failing validation
	// Required: true
	Key *string `json:"key"`
}

// PublicHTTPValidationError is returned for request bodies failing validation
type PublicHTTPValidationError struct {
	PublicHTTPError

	// List of errors received while validating payload against schema
	// Required: true
	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}
