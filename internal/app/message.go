package app

// Page identifies the active record kind in the UI.
type Page string

const (
	PageUsers         Page = "users"
	PageJobs          Page = "jobs"
	PageOrganizations Page = "organizations"
)

// ParsePage maps a page name onto a Page tag.
func ParsePage(s string) (Page, bool) {
	switch Page(s) {
	case PageUsers, PageJobs, PageOrganizations:
		return Page(s), true
	}
	return "", false
}

// Message is one UI intent processed by the session loop. The set is
// closed: every intent maps 1:1 onto an operation of the active page's
// state manager.
type Message interface {
	isMessage()
}

// Navigate switches the active page, cancelling any in-progress edit on
// the page being left.
type Navigate struct {
	Page Page
}

// NameChanged sets the draft name on the active page.
type NameChanged struct {
	Text string
}

// FieldSelected sets a foreign-key field on the active page's draft.
type FieldSelected struct {
	Field string
	Ref   int64
}

// Create persists the active page's draft as a new record.
type Create struct{}

// Update persists the active page's loaded draft over the stored record.
type Update struct{}

// Delete removes the record with the given id from the active page.
type Delete struct {
	ID int64
}

// Load clones the record with the given id into the active page's draft.
type Load struct {
	ID int64
}

// CancelEdit discards the active page's draft.
type CancelEdit struct{}

// Refresh re-fetches the active page's list from the store.
type Refresh struct{}

// OpenRecord navigates to a page and loads one of its records for edit,
// e.g. clicking a user's job in the list view.
type OpenRecord struct {
	Page Page
	ID   int64
}

func (Navigate) isMessage()      {}
func (NameChanged) isMessage()   {}
func (FieldSelected) isMessage() {}
func (Create) isMessage()        {}
func (Update) isMessage()        {}
func (Delete) isMessage()        {}
func (Load) isMessage()          {}
func (CancelEdit) isMessage()    {}
func (Refresh) isMessage()       {}
func (OpenRecord) isMessage()    {}
