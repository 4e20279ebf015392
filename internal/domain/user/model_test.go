package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffdesk/internal/core/apperror"
	"staffdesk/internal/core/entity"
)

func validUser() *User {
	u := New()
	u.SetName("Alice")
	u.JobID = 1
	u.OrganizationID = 2
	return u
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr map[string]string
	}{
		{
			name:    "valid user passes",
			mutate:  func(u *User) {},
			wantErr: nil,
		},
		{
			name:    "empty name",
			mutate:  func(u *User) { u.SetName("") },
			wantErr: map[string]string{entity.FieldName: entity.MsgNameRequired},
		},
		{
			name:    "whitespace-only name",
			mutate:  func(u *User) { u.SetName("   ") },
			wantErr: map[string]string{entity.FieldName: entity.MsgNameRequired},
		},
		{
			name:    "two characters too short",
			mutate:  func(u *User) { u.SetName("Al") },
			wantErr: map[string]string{entity.FieldName: entity.MsgNameTooShort},
		},
		{
			name:    "padding does not satisfy the minimum",
			mutate:  func(u *User) { u.SetName("  Al  ") },
			wantErr: map[string]string{entity.FieldName: entity.MsgNameTooShort},
		},
		{
			name:    "three characters is enough",
			mutate:  func(u *User) { u.SetName("Ali") },
			wantErr: nil,
		},
		{
			name:    "fifty characters is fine",
			mutate:  func(u *User) { u.SetName(strings.Repeat("a", 50)) },
			wantErr: nil,
		},
		{
			name:    "fifty-one characters too long",
			mutate:  func(u *User) { u.SetName(strings.Repeat("a", 51)) },
			wantErr: map[string]string{entity.FieldName: entity.MsgNameTooLong},
		},
		{
			name:    "multibyte runes count as characters",
			mutate:  func(u *User) { u.SetName("Аня") },
			wantErr: nil,
		},
		{
			name:    "missing job selection",
			mutate:  func(u *User) { u.JobID = 0 },
			wantErr: map[string]string{entity.FieldJobID: MsgJobRequired},
		},
		{
			name:    "missing organization selection",
			mutate:  func(u *User) { u.OrganizationID = 0 },
			wantErr: map[string]string{entity.FieldOrganizationID: MsgOrganizationRequired},
		},
		{
			name:   "all fields invalid at once",
			mutate: func(u *User) { u.SetName(""); u.JobID = 0; u.OrganizationID = 0 },
			wantErr: map[string]string{
				entity.FieldName:           entity.MsgNameRequired,
				entity.FieldJobID:          MsgJobRequired,
				entity.FieldOrganizationID: MsgOrganizationRequired,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(u)

			err := u.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Empty(t, u.Errors())
				return
			}

			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.wantErr, appErr.FieldErrors())
			assert.Equal(t, tt.wantErr, u.Errors())
		})
	}
}

func TestValidateReplacesStaleErrors(t *testing.T) {
	u := validUser()
	u.SetName("")
	require.Error(t, u.Validate())

	u.SetName("Alice")
	require.NoError(t, u.Validate())
	assert.Empty(t, u.Errors())
}

func TestValidateFieldTouchesOnlyNamedField(t *testing.T) {
	u := New() // everything invalid

	u.ValidateField(entity.FieldName)
	assert.Equal(t, map[string]string{entity.FieldName: entity.MsgNameRequired}, u.Errors())

	u.SetName("Alice")
	u.ValidateField(entity.FieldName)
	assert.Empty(t, u.Errors(), "clearing a field removes only its entry")

	u.ValidateField(entity.FieldJobID)
	assert.Equal(t, map[string]string{entity.FieldJobID: MsgJobRequired}, u.Errors())
}

func TestSetReference(t *testing.T) {
	u := New()

	assert.True(t, u.SetReference(entity.FieldJobID, 3))
	assert.True(t, u.SetReference(entity.FieldOrganizationID, 4))
	assert.Equal(t, int64(3), u.JobID)
	assert.Equal(t, int64(4), u.OrganizationID)

	assert.False(t, u.SetReference("salary", 1))
}

func TestCloneIsDeep(t *testing.T) {
	u := validUser()
	u.SetName("")
	require.Error(t, u.Validate())

	c := u.Clone()
	c.SetName("Alice")
	c.ValidateField(entity.FieldName)

	assert.Equal(t, entity.MsgNameRequired, u.Errors()[entity.FieldName],
		"the clone's error map must not alias the source")
	assert.Empty(t, c.Errors())
}
