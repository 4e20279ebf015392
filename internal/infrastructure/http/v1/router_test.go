package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffdesk/internal/app"
	"staffdesk/internal/domain/job"
	"staffdesk/internal/domain/organization"
	"staffdesk/internal/domain/user"
	"staffdesk/internal/infrastructure/storage/sqlite"
	"staffdesk/internal/state"
	"staffdesk/pkg/logger"
)

// newTestServer boots the full stack: store, services, session and router.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db))

	txm := sqlite.NewTxManager(db)
	userRepo := sqlite.NewUserRepo(txm)
	jobRepo := sqlite.NewJobRepo(txm)
	orgRepo := sqlite.NewOrganizationRepo(txm)

	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)

	session := app.NewSession(log,
		state.NewManager("user", user.NewService(userRepo, jobRepo, orgRepo, txm), user.New),
		state.NewManager("job", job.NewService(jobRepo, txm), job.New),
		state.NewManager("organization", organization.NewService(orgRepo, txm), organization.New),
	)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go session.Run(ctx)

	srv := httptest.NewServer(NewRouter(RouterConfig{Session: session, Logger: log}))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp := getJSON(t, srv, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	srv := newTestServer(t)
	resp := getJSON(t, srv, "/api/v1/health", nil)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestCreateFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/v1/session/navigate", map[string]any{"page": "jobs"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv, "/api/v1/session/name", map[string]any{"name": "Engineer"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv, "/api/v1/session/create", nil)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	require.Eventually(t, func() bool {
		var list struct {
			Items []struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			} `json:"items"`
		}
		getJSON(t, srv, "/api/v1/jobs", &list)
		return len(list.Items) == 1 && list.Items[0].Name == "Engineer"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestValidationFailureIsBadRequest(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/v1/session/name", map[string]any{"name": "Al"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv, "/api/v1/session/create", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Code    string `json:"code"`
		Details struct {
			Fields map[string]string `json:"fields"`
		} `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Equal(t, "Name must be at least 3 characters", body.Details.Fields["name"])
}

func TestUnknownPageIsRejected(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv, "/api/v1/session/navigate", map[string]any{"page": "payroll"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteUnknownIDIsNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv, "/api/v1/session/delete", map[string]any{"id": 42})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDraftReflectsTyping(t *testing.T) {
	srv := newTestServer(t)

	postJSON(t, srv, "/api/v1/session/navigate", map[string]any{"page": "organizations"})
	postJSON(t, srv, "/api/v1/session/name", map[string]any{"name": "Ac"})

	var draft struct {
		Record struct {
			Name string `json:"name"`
		} `json:"record"`
		Errors   map[string]string `json:"errors"`
		EditMode bool              `json:"editMode"`
	}
	getJSON(t, srv, "/api/v1/session/draft", &draft)
	assert.Equal(t, "Ac", draft.Record.Name)
	assert.Equal(t, "Name must be at least 3 characters", draft.Errors["name"])
	assert.False(t, draft.EditMode)
}

func TestListUsersResolvesReferenceNames(t *testing.T) {
	srv := newTestServer(t)

	postJSON(t, srv, "/api/v1/session/navigate", map[string]any{"page": "jobs"})
	postJSON(t, srv, "/api/v1/session/name", map[string]any{"name": "Engineer"})
	postJSON(t, srv, "/api/v1/session/create", nil)
	postJSON(t, srv, "/api/v1/session/navigate", map[string]any{"page": "organizations"})
	postJSON(t, srv, "/api/v1/session/name", map[string]any{"name": "Acme"})
	postJSON(t, srv, "/api/v1/session/create", nil)

	postJSON(t, srv, "/api/v1/session/navigate", map[string]any{"page": "users"})
	postJSON(t, srv, "/api/v1/session/name", map[string]any{"name": "Alice"})
	postJSON(t, srv, "/api/v1/session/select", map[string]any{"field": "job_id", "id": 1})
	postJSON(t, srv, "/api/v1/session/select", map[string]any{"field": "organization_id", "id": 1})

	// The selections may race the job/organization inserts; retry the
	// create until the referenced rows are visible.
	require.Eventually(t, func() bool {
		postJSON(t, srv, "/api/v1/session/create", nil)
		var list struct {
			Items []struct {
				Name             string `json:"name"`
				JobName          string `json:"jobName"`
				OrganizationName string `json:"organizationName"`
			} `json:"items"`
		}
		getJSON(t, srv, "/api/v1/users", &list)
		return len(list.Items) == 1 &&
			list.Items[0].JobName == "Engineer" &&
			list.Items[0].OrganizationName == "Acme"
	}, 2*time.Second, 10*time.Millisecond)
}
