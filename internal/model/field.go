package model

import "errors"

// Field is a filterable customer attribute. Its value is both the JSON key,
// the query parameter and the column name.
type Field string

const (
	FieldName        Field = "name"
	FieldAddress     Field = "address"
	FieldEmail       Field = "email"
	FieldPhoneNumber Field = "phonenumber"
)

// Fields lists the business fields in validation and filter priority order.
var Fields = []Field{FieldName, FieldAddress, FieldEmail, FieldPhoneNumber}

var ErrUnknownField = errors.New("unknown customer field")

func (f Field) String() string { return string(f) }

func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// Column returns the table column backing f.
func (f Field) Column() (string, error) {
	if !f.Valid() {
		return "", ErrUnknownField
	}
	return string(f), nil
}
