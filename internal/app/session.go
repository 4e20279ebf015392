// Package app runs the single-threaded session that owns all entity state
// managers and dispatches UI intents to the one for the active page.
package app

import (
	"context"

	"staffdesk/internal/core/apperror"
	"staffdesk/internal/domain/job"
	"staffdesk/internal/domain/organization"
	"staffdesk/internal/domain/user"
	"staffdesk/internal/state"
	"staffdesk/pkg/logger"
)

// ReferencePlaceholder is shown for a dangling or unselected reference.
const ReferencePlaceholder = "None"

// envelope carries one unit of work through the session queue: either a
// dispatched intent or a completion apply from a finished gateway call.
type envelope struct {
	fn    func() error
	reply chan error
}

// Session owns the three state managers, the active page, and the event
// queue. All manager state is touched only on the Run goroutine; outside
// callers reach it through Dispatch and Do.
type Session struct {
	log *logger.Logger

	users         *state.Manager[*user.User]
	jobs          *state.Manager[*job.Job]
	organizations *state.Manager[*organization.Organization]
	managers      map[Page]state.EntityManager

	page   Page
	status string

	queue chan envelope
	ctx   context.Context
}

// NewSession creates a session over the per-kind managers.
func NewSession(
	log *logger.Logger,
	users *state.Manager[*user.User],
	jobs *state.Manager[*job.Job],
	organizations *state.Manager[*organization.Organization],
) *Session {
	s := &Session{
		log:           log.WithComponent("session"),
		users:         users,
		jobs:          jobs,
		organizations: organizations,
		page:          PageUsers,
		queue:         make(chan envelope, 64),
	}
	s.managers = map[Page]state.EntityManager{
		PageUsers:         users,
		PageJobs:          jobs,
		PageOrganizations: organizations,
	}
	return s
}

// Run processes the session queue until ctx is cancelled. It must be
// running before Dispatch or Do are called.
func (s *Session) Run(ctx context.Context) {
	s.ctx = ctx
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-s.queue:
			err := env.fn()
			if env.reply != nil {
				env.reply <- err
			} else if err != nil {
				// A completion failed: surface as status, state unchanged.
				s.status = err.Error()
				s.log.Warnw("persistence completion failed", "error", err)
			}
		}
	}
}

// Do runs fn on the session goroutine and waits for it. Use it for any
// read or mutation of session-owned state from the outside.
func (s *Session) Do(ctx context.Context, fn func() error) error {
	reply := make(chan error, 1)
	select {
	case s.queue <- envelope{fn: fn, reply: reply}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatch routes one intent through the session queue and returns its
// synchronous outcome. Persistence effects complete later via posted
// applies.
func (s *Session) Dispatch(ctx context.Context, msg Message) error {
	return s.Do(ctx, func() error { return s.handle(msg) })
}

// post hands a gateway completion back to the session queue. Called from
// gateway goroutines.
func (s *Session) post(a state.Apply) {
	s.queue <- envelope{fn: a}
}

func (s *Session) handle(msg Message) error {
	switch msg := msg.(type) {
	case Navigate:
		return s.navigate(msg.Page)
	case NameChanged:
		s.active().NameChanged(msg.Text)
		return nil
	case FieldSelected:
		return s.active().FieldSelected(msg.Field, msg.Ref)
	case Create:
		return s.active().Create(s.ctx, s.post)
	case Update:
		return s.active().Update(s.ctx, s.post)
	case Delete:
		return s.active().Delete(s.ctx, msg.ID, s.post)
	case Load:
		return s.active().Load(msg.ID)
	case CancelEdit:
		s.active().CancelEdit()
		return nil
	case Refresh:
		s.active().Refresh(s.ctx, s.post)
		return nil
	case OpenRecord:
		if err := s.navigate(msg.Page); err != nil {
			return err
		}
		return s.active().Load(msg.ID)
	default:
		return apperror.NewValidation("unknown message")
	}
}

func (s *Session) navigate(page Page) error {
	if _, ok := s.managers[page]; !ok {
		return apperror.NewValidation("unknown page").WithDetail("page", string(page))
	}
	s.active().CancelEdit()
	s.page = page
	s.status = ""
	return nil
}

func (s *Session) active() state.EntityManager {
	return s.managers[s.page]
}

// --- Loop-owned accessors ---
//
// The methods below read session state and must be called on the Run
// goroutine, i.e. from inside Do or handle.

// Page returns the active page.
func (s *Session) Page() Page { return s.page }

// Status returns the last surfaced persistence failure, empty when clean.
func (s *Session) Status() string { return s.status }

// Users returns the user state manager.
func (s *Session) Users() *state.Manager[*user.User] { return s.users }

// Jobs returns the job state manager.
func (s *Session) Jobs() *state.Manager[*job.Job] { return s.jobs }

// Organizations returns the organization state manager.
func (s *Session) Organizations() *state.Manager[*organization.Organization] {
	return s.organizations
}

// JobName resolves a job id against the job list, or the placeholder for
// a dangling reference. Dangling is tolerated, not an error: the job may
// have been deleted after selection or the list not yet loaded.
func (s *Session) JobName(id int64) string {
	for _, j := range s.jobs.List() {
		if j.ID() == id {
			return j.Name()
		}
	}
	return ReferencePlaceholder
}

// OrganizationName resolves an organization id against the organization
// list, or the placeholder.
func (s *Session) OrganizationName(id int64) string {
	for _, o := range s.organizations.List() {
		if o.ID() == id {
			return o.Name()
		}
	}
	return ReferencePlaceholder
}

// Hydrate fetches all three lists from the store. Call once at startup
// after Run is going.
func (s *Session) Hydrate(ctx context.Context) error {
	return s.Do(ctx, func() error {
		s.users.Refresh(s.ctx, s.post)
		s.jobs.Refresh(s.ctx, s.post)
		s.organizations.Refresh(s.ctx, s.post)
		return nil
	})
}
