package model

import (
	"bytes"
	"encoding/json"
)

// Customer is the DB entity persisted in the customers table.
// ID is zero until the gateway assigns one on create.
type Customer struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Address     string `db:"address"`
	Email       string `db:"email"`
	PhoneNumber string `db:"phonenumber"`
}

// CustomerJSON is the wire shape of a Customer; id is null before persistence.
type CustomerJSON struct {
	ID          *int64 `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
}

// Serialize converts the entity into its wire shape.
func (c Customer) Serialize() CustomerJSON {
	out := CustomerJSON{
		Name:        c.Name,
		Address:     c.Address,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
	}
	if c.ID != 0 {
		id := c.ID
		out.ID = &id
	}
	return out
}

// SerializeAll converts a slice of entities, never returning nil.
func SerializeAll(cs []Customer) []CustomerJSON {
	out := make([]CustomerJSON, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Serialize())
	}
	return out
}

// Decode validates a JSON request body and returns a new, unpersisted Customer.
// Fields are checked in Fields order and the first failure is returned as a *ValidationError.
// Unknown keys, including "id", are ignored.
func Decode(data []byte) (Customer, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Customer{}, &ValidationError{Kind: MalformedBody, Err: err}
	}
	if raw == nil {
		return Customer{}, &ValidationError{Kind: MalformedBody}
	}

	values := make(map[Field]string, len(Fields))
	for _, f := range Fields {
		v, ok := raw[string(f)]
		if !ok {
			return Customer{}, &ValidationError{Kind: MissingField, Field: f}
		}
		kind := jsonKind(v)
		if kind != "string" {
			return Customer{}, &ValidationError{Kind: WrongType, Field: f, Type: kind}
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return Customer{}, &ValidationError{Kind: MalformedBody, Err: err}
		}
		values[f] = s
	}

	return Customer{
		Name:        values[FieldName],
		Address:     values[FieldAddress],
		Email:       values[FieldEmail],
		PhoneNumber: values[FieldPhoneNumber],
	}, nil
}

// Deserialize validates data and copies the business fields onto c.
// c is left untouched when validation fails; the ID is never changed.
func (c *Customer) Deserialize(data []byte) error {
	in, err := Decode(data)
	if err != nil {
		return err
	}
	c.Name = in.Name
	c.Address = in.Address
	c.Email = in.Email
	c.PhoneNumber = in.PhoneNumber
	return nil
}

// Get returns the value of an enumerated field.
func (c Customer) Get(f Field) string {
	switch f {
	case FieldName:
		return c.Name
	case FieldAddress:
		return c.Address
	case FieldEmail:
		return c.Email
	case FieldPhoneNumber:
		return c.PhoneNumber
	default:
		return ""
	}
}

// jsonKind names the JSON type of an already valid raw value.
func jsonKind(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return "null"
	}
	switch v[0] {
	case '"':
		return "string"
	case 'n':
		return "null"
	case 't', 'f':
		return "bool"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "number"
	}
}
