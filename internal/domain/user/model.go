// Package user provides the User record kind.
package user

import (
	"staffdesk/internal/core/apperror"
	"staffdesk/internal/core/entity"
)

// Validation messages for the reference selections.
const (
	MsgJobRequired          = "Job selection is required"
	MsgOrganizationRequired = "Organization selection is required"
)

// User represents a person holding a job within an organization.
// JobID and OrganizationID are foreign keys; 0 means unselected.
type User struct {
	entity.Base
	JobID          int64 `db:"job_id" json:"jobId"`
	OrganizationID int64 `db:"organization_id" json:"organizationId"`
}

// New creates a blank User draft.
func New() *User {
	return &User{}
}

// Clone returns a deep copy; the field-error map is never shared.
func (u *User) Clone() *User {
	out := *u
	out.FieldErrors = u.CloneErrors()
	return &out
}

// Validate implements entity.Record. It replaces the whole error map.
func (u *User) Validate() error {
	u.ClearErrors()
	u.SetError(entity.FieldName, entity.NameError(u.Name()))
	u.SetError(entity.FieldJobID, entity.SelectionError(u.JobID, MsgJobRequired))
	u.SetError(entity.FieldOrganizationID, entity.SelectionError(u.OrganizationID, MsgOrganizationRequired))
	if len(u.Errors()) > 0 {
		return apperror.NewFieldValidation("user", u.CloneErrors())
	}
	return nil
}

// ValidateField re-runs only the named field's rule.
func (u *User) ValidateField(field string) {
	switch field {
	case entity.FieldName:
		u.SetError(entity.FieldName, entity.NameError(u.Name()))
	case entity.FieldJobID:
		u.SetError(entity.FieldJobID, entity.SelectionError(u.JobID, MsgJobRequired))
	case entity.FieldOrganizationID:
		u.SetError(entity.FieldOrganizationID, entity.SelectionError(u.OrganizationID, MsgOrganizationRequired))
	}
}

// SetReference implements entity.ReferenceHolder for the job and
// organization pickers.
func (u *User) SetReference(field string, ref int64) bool {
	switch field {
	case entity.FieldJobID:
		u.JobID = ref
	case entity.FieldOrganizationID:
		u.OrganizationID = ref
	default:
		return false
	}
	return true
}
