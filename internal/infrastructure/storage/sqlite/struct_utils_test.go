package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"staffdesk/internal/domain/job"
	"staffdesk/internal/domain/user"
)

func TestExtractDBColumns(t *testing.T) {
	assert.Equal(t,
		[]string{"id", "name", "job_id", "organization_id"},
		ExtractDBColumns[*user.User](),
	)

	assert.Equal(t, []string{"id", "name"}, ExtractDBColumns[*job.Job]())
}

func TestStructToMap(t *testing.T) {
	u := user.New()
	u.SetID(7)
	u.SetName("Alice")
	u.JobID = 1
	u.OrganizationID = 2
	u.SetError("name", "whatever") // db:"-", must not leak

	got := StructToMap(u)
	assert.Equal(t, map[string]any{
		"id":              int64(7),
		"name":            "Alice",
		"job_id":          int64(1),
		"organization_id": int64(2),
	}, got)
}

func TestStructToMapNilPointer(t *testing.T) {
	var u *user.User
	assert.Empty(t, StructToMap(u))
}
