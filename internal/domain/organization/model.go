// Package organization provides the Organization record kind.
package organization

import (
	"staffdesk/internal/core/apperror"
	"staffdesk/internal/core/entity"
)

// Organization represents a company or business unit a user belongs to.
type Organization struct {
	entity.Base
}

// New creates a blank Organization draft.
func New() *Organization {
	return &Organization{}
}

// Clone returns a deep copy; the field-error map is never shared.
func (o *Organization) Clone() *Organization {
	out := *o
	out.FieldErrors = o.CloneErrors()
	return &out
}

// Validate implements entity.Record. It replaces the whole error map.
func (o *Organization) Validate() error {
	o.ClearErrors()
	o.SetError(entity.FieldName, entity.NameError(o.Name()))
	if len(o.Errors()) > 0 {
		return apperror.NewFieldValidation("organization", o.CloneErrors())
	}
	return nil
}

// ValidateField re-runs only the named field's rule.
func (o *Organization) ValidateField(field string) {
	switch field {
	case entity.FieldName:
		o.SetError(entity.FieldName, entity.NameError(o.Name()))
	}
}
