package model

import "fmt"

type ValidationKind int

const (
	MalformedBody ValidationKind = iota
	MissingField
	WrongType
)

func (k ValidationKind) String() string {
	switch k {
	case MissingField:
		return "missing_field"
	case WrongType:
		return "wrong_type"
	default:
		return "malformed_body"
	}
}

// ValidationError reports the first problem found while decoding a customer payload.
type ValidationError struct {
	Kind  ValidationKind
	Field Field  // set for MissingField and WrongType
	Type  string // JSON type of the offending value, WrongType only
	Err   error  // underlying decode error, MalformedBody only
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingField:
		return "Invalid Customer: missing " + string(e.Field)
	case WrongType:
		return fmt.Sprintf("Invalid type for [%s]: %s", e.Field, e.Type)
	default:
		if e.Err != nil {
			return "Invalid Customer: body of request contained bad or no data " + e.Err.Error()
		}
		return "Invalid Customer: body of request contained bad or no data"
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }
