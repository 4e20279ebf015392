// Package state implements the generic edit/list state manager that tracks
// the in-progress draft against the persisted list for one record kind.
//
// All manager state is owned by a single event-loop goroutine. Persistence
// calls run on their own goroutines and hand their results back as Apply
// thunks; the loop runs each thunk, and a thunk whose draft context has
// meanwhile changed (cancel, load, navigation) is discarded.
package state

import (
	"context"

	"staffdesk/internal/core/apperror"
	"staffdesk/internal/core/entity"
)

// Gateway is the persistence boundary the manager delegates to.
type Gateway[T any] interface {
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, rec T) error
	Delete(ctx context.Context, id int64) error
	FindAll(ctx context.Context) ([]T, error)
}

// Apply is the deferred completion of an asynchronous persistence call.
// It must be run on the event-loop goroutine that owns the manager.
type Apply func() error

// EntityManager is the non-generic capability surface used to dispatch
// intents to the manager of the currently active record kind.
type EntityManager interface {
	NameChanged(text string)
	FieldSelected(field string, ref int64) error
	Create(ctx context.Context, post func(Apply)) error
	Update(ctx context.Context, post func(Apply)) error
	Delete(ctx context.Context, id int64, post func(Apply)) error
	Load(id int64) error
	CancelEdit()
	Refresh(ctx context.Context, post func(Apply))
	EditMode() bool
}

// Manager owns one record kind's draft/list/mode lifecycle.
//
// Two states: Composing (editMode false, draft id 0) and Editing
// (editMode true, draft id set by Load). The draft never aliases a list
// entry: Load clones out of the list and completions store the saved
// clone, so typing into the draft cannot mutate the cache.
type Manager[T entity.Record[T]] struct {
	name    string
	gateway Gateway[T]
	blank   func() T

	current  T
	list     []T
	editMode bool

	// epoch identifies the draft context. Completions staged under an older
	// epoch are discarded; it advances whenever the draft is replaced
	// wholesale.
	epoch uint64
}

// NewManager creates a manager for one record kind. name is used in
// not-found messages; blank produces a fresh empty draft.
func NewManager[T entity.Record[T]](name string, gateway Gateway[T], blank func() T) *Manager[T] {
	return &Manager[T]{
		name:    name,
		gateway: gateway,
		blank:   blank,
		current: blank(),
	}
}

// Current returns the in-progress draft.
func (m *Manager[T]) Current() T { return m.current }

// List returns the in-memory cache of persisted records. Callers must
// treat it as read-only.
func (m *Manager[T]) List() []T { return m.list }

// EditMode reports whether an existing record is being edited.
func (m *Manager[T]) EditMode() bool { return m.editMode }

// NameChanged sets the draft name and re-validates just the name field,
// so the UI gets live feedback per keystroke.
func (m *Manager[T]) NameChanged(text string) {
	m.current.SetName(text)
	m.current.ValidateField(entity.FieldName)
}

// FieldSelected sets a foreign-key field on the draft through the picker
// and re-validates that field.
func (m *Manager[T]) FieldSelected(field string, ref int64) error {
	holder, ok := any(m.current).(entity.ReferenceHolder)
	if !ok || !holder.SetReference(field, ref) {
		return apperror.NewValidation("unknown field").
			WithDetail("entity", m.name).
			WithDetail("field", field)
	}
	m.current.ValidateField(field)
	return nil
}

// Create validates the draft and begins the asynchronous insert. A
// validation failure is returned immediately and nothing is issued; the
// draft and list are untouched until the completion confirms success.
func (m *Manager[T]) Create(ctx context.Context, post func(Apply)) error {
	if err := m.current.Validate(); err != nil {
		return err
	}
	rec := m.current.Clone()
	epoch := m.epoch
	go func() {
		saved, err := m.gateway.Create(ctx, rec)
		post(func() error { return m.completeCreate(epoch, saved, err) })
	}()
	return nil
}

func (m *Manager[T]) completeCreate(epoch uint64, saved T, err error) error {
	if epoch != m.epoch {
		return nil // stale: the draft context changed while in flight
	}
	if err != nil {
		return err
	}
	m.list = append(m.list, saved)
	m.reset()
	return nil
}

// Update validates the loaded draft and begins the asynchronous update.
// Requires edit mode; the matching list entry is replaced only on the
// confirmed completion.
func (m *Manager[T]) Update(ctx context.Context, post func(Apply)) error {
	if !m.editMode || m.current.ID() == 0 {
		return apperror.NewValidation("no record is being edited").
			WithDetail("entity", m.name)
	}
	if err := m.current.Validate(); err != nil {
		return err
	}
	if m.indexOf(m.current.ID()) < 0 {
		return apperror.NewNotFound(m.name, m.current.ID())
	}
	rec := m.current.Clone()
	epoch := m.epoch
	go func() {
		err := m.gateway.Update(ctx, rec)
		post(func() error { return m.completeUpdate(epoch, rec, err) })
	}()
	return nil
}

func (m *Manager[T]) completeUpdate(epoch uint64, saved T, err error) error {
	if epoch != m.epoch {
		return nil
	}
	if err != nil {
		return err
	}
	i := m.indexOf(saved.ID())
	if i < 0 {
		return apperror.NewNotFound(m.name, saved.ID())
	}
	m.list[i] = saved
	m.reset()
	return nil
}

// Delete begins the asynchronous delete of the record with the given id.
// A stale id (already gone from the list) fails with not-found up front.
// The completion is applied regardless of draft context: removing a list
// entry is not scoped to the draft.
func (m *Manager[T]) Delete(ctx context.Context, id int64, post func(Apply)) error {
	if m.indexOf(id) < 0 {
		return apperror.NewNotFound(m.name, id)
	}
	go func() {
		err := m.gateway.Delete(ctx, id)
		post(func() error { return m.completeDelete(id, err) })
	}()
	return nil
}

func (m *Manager[T]) completeDelete(id int64, err error) error {
	if err != nil {
		return err
	}
	if i := m.indexOf(id); i >= 0 {
		m.list = append(m.list[:i], m.list[i+1:]...)
	}
	return nil
}

// Load clones the list entry with the given id into the draft and enters
// edit mode. Fails with not-found for a stale id.
func (m *Manager[T]) Load(id int64) error {
	i := m.indexOf(id)
	if i < 0 {
		return apperror.NewNotFound(m.name, id)
	}
	m.current = m.list[i].Clone()
	m.current.ClearErrors()
	m.editMode = true
	m.epoch++
	return nil
}

// CancelEdit discards the draft and returns to Composing. Idempotent.
func (m *Manager[T]) CancelEdit() {
	m.reset()
}

// Refresh begins the asynchronous fetch of the full list, ordered as the
// gateway returns it.
func (m *Manager[T]) Refresh(ctx context.Context, post func(Apply)) {
	go func() {
		items, err := m.gateway.FindAll(ctx)
		post(func() error { return m.completeRefresh(items, err) })
	}()
}

func (m *Manager[T]) completeRefresh(items []T, err error) error {
	if err != nil {
		return err
	}
	m.list = items
	return nil
}

// reset replaces the draft with a fresh blank record and invalidates any
// in-flight draft completions.
func (m *Manager[T]) reset() {
	m.current = m.blank()
	m.editMode = false
	m.epoch++
}

func (m *Manager[T]) indexOf(id int64) int {
	for i, rec := range m.list {
		if rec.ID() == id {
			return i
		}
	}
	return -1
}
