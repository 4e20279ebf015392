// Package entity defines the capability set shared by all record kinds.
package entity

import (
	"strings"
	"unicode/utf8"
)

// Field names used as keys in validation error maps.
const (
	FieldName           = "name"
	FieldJobID          = "job_id"
	FieldOrganizationID = "organization_id"
)

// Validation messages for the shared name rule.
const (
	MsgNameRequired = "Name is required"
	MsgNameTooShort = "Name must be at least 3 characters"
	MsgNameTooLong  = "Name must be under 50 characters"
)

// Record is implemented by every record kind (User, Job, Organization).
// The type parameter is the implementing type itself, so Clone returns the
// concrete kind and the state manager stays generic over it.
//
// Errors is a mutable map from field name to message, recomputed by
// validation and never persisted. Validate repopulates the whole map;
// ValidateField touches only the named key.
type Record[T any] interface {
	ID() int64
	SetID(id int64)
	Name() string
	SetName(name string)
	Errors() map[string]string
	Validate() error
	ValidateField(field string)
	ClearErrors()
	Clone() T
}

// ReferenceHolder is implemented by record kinds carrying foreign keys that
// the UI sets through pickers. SetReference reports whether the field is a
// known reference field of the record.
type ReferenceHolder interface {
	SetReference(field string, ref int64) bool
}

// Base carries identity, display name and the field-error map.
// Embed it in concrete record types.
type Base struct {
	RecordID    int64             `db:"id" json:"id"`
	DisplayName string            `db:"name" json:"name"`
	FieldErrors map[string]string `db:"-" json:"errors,omitempty"`
}

// ID returns the record identity; 0 means not yet persisted.
func (b *Base) ID() int64 { return b.RecordID }

// SetID assigns the identity. Called by the storage layer on insert.
func (b *Base) SetID(id int64) { b.RecordID = id }

// Name returns the display name.
func (b *Base) Name() string { return b.DisplayName }

// SetName sets the display name.
func (b *Base) SetName(name string) { b.DisplayName = name }

// Errors returns the current field-error map. May be nil when clean.
func (b *Base) Errors() map[string]string { return b.FieldErrors }

// ClearErrors drops all field errors.
func (b *Base) ClearErrors() { b.FieldErrors = nil }

// SetError records a message for a field, replacing any previous one.
// An empty message removes the entry.
func (b *Base) SetError(field, message string) {
	if message == "" {
		delete(b.FieldErrors, field)
		return
	}
	if b.FieldErrors == nil {
		b.FieldErrors = make(map[string]string)
	}
	b.FieldErrors[field] = message
}

// CloneErrors returns a copy of the field-error map for use in Clone
// implementations, so a cloned draft never shares the map with its source.
func (b *Base) CloneErrors() map[string]string {
	if b.FieldErrors == nil {
		return nil
	}
	out := make(map[string]string, len(b.FieldErrors))
	for k, v := range b.FieldErrors {
		out[k] = v
	}
	return out
}

// NameError evaluates the shared name rule: required after trimming, at
// least 3 characters trimmed, at most 50 characters. Returns the failure
// message or empty string.
func NameError(name string) string {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return MsgNameRequired
	case utf8.RuneCountInString(trimmed) < 3:
		return MsgNameTooShort
	case utf8.RuneCountInString(name) > 50:
		return MsgNameTooLong
	}
	return ""
}

// SelectionError evaluates a foreign-key selection: 0 is the unselected
// sentinel. Returns the given message on failure or empty string.
func SelectionError(ref int64, message string) string {
	if ref == 0 {
		return message
	}
	return ""
}
