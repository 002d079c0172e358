package domain

import (
	"strings"
	"unicode/utf8"
)

// Column widths of the list table.
const (
	IDLength         = 10
	NameMaxLength    = 100
	PhoneMaxLength   = 30
	AddressMaxLength = 255
	RemarkMaxLength  = 500
)

// Record is a single row of the list table. ID is opaque, fixed-width text;
// it is never parsed as a number.
type Record struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Remark  string `json:"remark"`
}

// RecordFields holds the mutable columns of a Record.
type RecordFields struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Remark  string `json:"remark"`
}

// Fields returns the mutable columns of r.
func (r Record) Fields() RecordFields {
	return RecordFields{
		Name:    r.Name,
		Phone:   r.Phone,
		Address: r.Address,
		Remark:  r.Remark,
	}
}

// Validate checks the ID and every mutable field.
func (r Record) Validate() error {
	if err := ValidateID(r.ID); err != nil {
		return err
	}
	return r.Fields().Validate()
}

// Validate checks that name, phone and address are present and that every
// field fits its column.
func (f RecordFields) Validate() error {
	required := []struct {
		field string
		value string
		max   int
	}{
		{"name", f.Name, NameMaxLength},
		{"phone", f.Phone, PhoneMaxLength},
		{"address", f.Address, AddressMaxLength},
	}
	for _, c := range required {
		if strings.TrimSpace(c.value) == "" {
			return NewValidationError(c.field, "is required", ErrEmptyField)
		}
		if utf8.RuneCountInString(c.value) > c.max {
			return NewValidationError(c.field, "is too long", ErrFieldTooLong)
		}
	}
	if utf8.RuneCountInString(f.Remark) > RemarkMaxLength {
		return NewValidationError("remark", "is too long", ErrFieldTooLong)
	}
	return nil
}

// ValidateID rejects blank IDs and IDs wider than the id column.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return NewValidationError("id", "is required", ErrEmptyField)
	}
	if utf8.RuneCountInString(id) > IDLength {
		return NewValidationError("id", "is too long", ErrFieldTooLong)
	}
	return nil
}
