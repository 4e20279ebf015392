// Package job provides the Job record kind.
package job

import (
	"staffdesk/internal/core/apperror"
	"staffdesk/internal/core/entity"
)

// Job represents a position a user can hold.
type Job struct {
	entity.Base
}

// New creates a blank Job draft.
func New() *Job {
	return &Job{}
}

// Clone returns a deep copy; the field-error map is never shared.
func (j *Job) Clone() *Job {
	out := *j
	out.FieldErrors = j.CloneErrors()
	return &out
}

// Validate implements entity.Record. It replaces the whole error map.
func (j *Job) Validate() error {
	j.ClearErrors()
	j.SetError(entity.FieldName, entity.NameError(j.Name()))
	if len(j.Errors()) > 0 {
		return apperror.NewFieldValidation("job", j.CloneErrors())
	}
	return nil
}

// ValidateField re-runs only the named field's rule.
func (j *Job) ValidateField(field string) {
	switch field {
	case entity.FieldName:
		j.SetError(entity.FieldName, entity.NameError(j.Name()))
	}
}
