package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEntity   = errors.New("invalid entity")
	ErrInvalidAction   = errors.New("invalid action")
	ErrInvalidRecordID = errors.New("invalid record id")
	ErrEmptyPayload    = errors.New("payload is required")
	ErrInvalidPayload  = errors.New("payload is not valid JSON")

	ErrInvalidLogin    = errors.New("invalid login")
	ErrInvalidPassword = errors.New("invalid password")
)
