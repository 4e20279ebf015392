// Package dto defines the request and response shapes of the intent API.
package dto

import (
	"staffdesk/internal/domain/job"
	"staffdesk/internal/domain/organization"
	"staffdesk/internal/domain/user"
)

// --- Requests ---

// NavigateRequest switches the active page.
type NavigateRequest struct {
	Page string `json:"page" binding:"required"`
}

// OpenRequest navigates to a page and loads one of its records.
type OpenRequest struct {
	Page string `json:"page" binding:"required"`
	ID   int64  `json:"id" binding:"required"`
}

// NameRequest carries a draft name change. An empty name is a legal
// keystroke state, so no required binding.
type NameRequest struct {
	Name string `json:"name"`
}

// SelectRequest carries a picker selection for a foreign-key field.
type SelectRequest struct {
	Field string `json:"field" binding:"required"`
	ID    int64  `json:"id"`
}

// IDRequest addresses one record by id.
type IDRequest struct {
	ID int64 `json:"id" binding:"required"`
}

// --- Responses ---

// SessionResponse describes the session's visible state.
type SessionResponse struct {
	Page   string `json:"page"`
	Status string `json:"status,omitempty"`
}

// DraftResponse exposes the active draft, its validation errors and mode.
type DraftResponse struct {
	Record   any               `json:"record"`
	Errors   map[string]string `json:"errors,omitempty"`
	EditMode bool              `json:"editMode"`
}

// JobResponse is the list/draft shape of a Job.
type JobResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromJob maps a Job record.
func FromJob(j *job.Job) JobResponse {
	return JobResponse{ID: j.ID(), Name: j.Name()}
}

// OrganizationResponse is the list/draft shape of an Organization.
type OrganizationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromOrganization maps an Organization record.
func FromOrganization(o *organization.Organization) OrganizationResponse {
	return OrganizationResponse{ID: o.ID(), Name: o.Name()}
}

// UserResponse is the list/draft shape of a User with resolved reference
// names.
type UserResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	JobID            int64  `json:"jobId"`
	JobName          string `json:"jobName"`
	OrganizationID   int64  `json:"organizationId"`
	OrganizationName string `json:"organizationName"`
}

// FromUser maps a User record with its resolved reference names.
func FromUser(u *user.User, jobName, organizationName string) UserResponse {
	return UserResponse{
		ID:               u.ID(),
		Name:             u.Name(),
		JobID:            u.JobID,
		JobName:          jobName,
		OrganizationID:   u.OrganizationID,
		OrganizationName: organizationName,
	}
}

// ListResponse wraps a list read.
type ListResponse struct {
	Items any `json:"items"`
}
