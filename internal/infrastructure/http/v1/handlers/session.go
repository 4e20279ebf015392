package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"staffdesk/internal/app"
	"staffdesk/internal/core/apperror"
	"staffdesk/internal/infrastructure/http/v1/dto"
)

// SessionHandler maps the intent API 1:1 onto session operations. Every
// mutation and read goes through the session's single-threaded queue.
type SessionHandler struct {
	*BaseHandler
	session *app.Session
}

// NewSessionHandler creates the session handler.
func NewSessionHandler(session *app.Session) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(),
		session:     session,
	}
}

// dispatch routes one intent and answers with the given success status.
// Validation and not-found failures surface immediately; persistence
// effects complete later on the session loop.
func (h *SessionHandler) dispatch(c *gin.Context, msg app.Message, status int) {
	if err := h.session.Dispatch(c.Request.Context(), msg); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(status, gin.H{"ok": true})
}

// State handles GET /session.
func (h *SessionHandler) State(c *gin.Context) {
	var resp dto.SessionResponse
	err := h.session.Do(c.Request.Context(), func() error {
		resp = dto.SessionResponse{
			Page:   string(h.session.Page()),
			Status: h.session.Status(),
		}
		return nil
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Navigate handles POST /session/navigate.
func (h *SessionHandler) Navigate(c *gin.Context) {
	var req dto.NavigateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	page, ok := app.ParsePage(req.Page)
	if !ok {
		h.Error(c, apperror.NewValidation("unknown page").WithDetail("page", req.Page))
		return
	}
	h.dispatch(c, app.Navigate{Page: page}, http.StatusOK)
}

// Open handles POST /session/open: navigate to a page and load a record.
func (h *SessionHandler) Open(c *gin.Context) {
	var req dto.OpenRequest
	if !h.BindJSON(c, &req) {
		return
	}
	page, ok := app.ParsePage(req.Page)
	if !ok {
		h.Error(c, apperror.NewValidation("unknown page").WithDetail("page", req.Page))
		return
	}
	h.dispatch(c, app.OpenRecord{Page: page, ID: req.ID}, http.StatusOK)
}

// NameChanged handles POST /session/name.
func (h *SessionHandler) NameChanged(c *gin.Context) {
	var req dto.NameRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.dispatch(c, app.NameChanged{Text: req.Name}, http.StatusOK)
}

// FieldSelected handles POST /session/select.
func (h *SessionHandler) FieldSelected(c *gin.Context) {
	var req dto.SelectRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.dispatch(c, app.FieldSelected{Field: req.Field, Ref: req.ID}, http.StatusOK)
}

// Create handles POST /session/create. 202: the insert was staged.
func (h *SessionHandler) Create(c *gin.Context) {
	h.dispatch(c, app.Create{}, http.StatusAccepted)
}

// Update handles POST /session/update. 202: the update was staged.
func (h *SessionHandler) Update(c *gin.Context) {
	h.dispatch(c, app.Update{}, http.StatusAccepted)
}

// Delete handles POST /session/delete. 202: the delete was staged.
func (h *SessionHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.dispatch(c, app.Delete{ID: req.ID}, http.StatusAccepted)
}

// Load handles POST /session/load.
func (h *SessionHandler) Load(c *gin.Context) {
	var req dto.IDRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.dispatch(c, app.Load{ID: req.ID}, http.StatusOK)
}

// CancelEdit handles POST /session/cancel.
func (h *SessionHandler) CancelEdit(c *gin.Context) {
	h.dispatch(c, app.CancelEdit{}, http.StatusOK)
}

// Refresh handles POST /session/refresh. 202: the fetch was staged.
func (h *SessionHandler) Refresh(c *gin.Context) {
	h.dispatch(c, app.Refresh{}, http.StatusAccepted)
}

// Draft handles GET /session/draft: the active page's draft, its
// validation errors and the edit-mode flag.
func (h *SessionHandler) Draft(c *gin.Context) {
	var resp dto.DraftResponse
	err := h.session.Do(c.Request.Context(), func() error {
		switch h.session.Page() {
		case app.PageUsers:
			m := h.session.Users()
			u := m.Current()
			resp = dto.DraftResponse{
				Record:   dto.FromUser(u, h.session.JobName(u.JobID), h.session.OrganizationName(u.OrganizationID)),
				Errors:   u.Errors(),
				EditMode: m.EditMode(),
			}
		case app.PageJobs:
			m := h.session.Jobs()
			resp = dto.DraftResponse{
				Record:   dto.FromJob(m.Current()),
				Errors:   m.Current().Errors(),
				EditMode: m.EditMode(),
			}
		case app.PageOrganizations:
			m := h.session.Organizations()
			resp = dto.DraftResponse{
				Record:   dto.FromOrganization(m.Current()),
				Errors:   m.Current().Errors(),
				EditMode: m.EditMode(),
			}
		}
		return nil
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListUsers handles GET /users with resolved job/organization names.
func (h *SessionHandler) ListUsers(c *gin.Context) {
	items := []dto.UserResponse{}
	err := h.session.Do(c.Request.Context(), func() error {
		for _, u := range h.session.Users().List() {
			items = append(items, dto.FromUser(u,
				h.session.JobName(u.JobID),
				h.session.OrganizationName(u.OrganizationID),
			))
		}
		return nil
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse{Items: items})
}

// ListJobs handles GET /jobs.
func (h *SessionHandler) ListJobs(c *gin.Context) {
	items := []dto.JobResponse{}
	err := h.session.Do(c.Request.Context(), func() error {
		for _, j := range h.session.Jobs().List() {
			items = append(items, dto.FromJob(j))
		}
		return nil
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse{Items: items})
}

// ListOrganizations handles GET /organizations.
func (h *SessionHandler) ListOrganizations(c *gin.Context) {
	items := []dto.OrganizationResponse{}
	err := h.session.Do(c.Request.Context(), func() error {
		for _, o := range h.session.Organizations().List() {
			items = append(items, dto.FromOrganization(o))
		}
		return nil
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse{Items: items})
}
