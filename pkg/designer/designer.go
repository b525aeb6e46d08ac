// Package designer holds the editing state of a dialog project and the
// commands that change it. Commands are pure with respect to their input:
// they take a State and return a new one, leaving the original untouched, so
// callers can keep snapshots for undo or compare before and after.
package designer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-aemdialog/pkg/blocks"
	"github.com/goliatone/go-aemdialog/pkg/model"
)

const (
	// DefaultTabID and DefaultTabName describe the tab every new dialog
	// starts with.
	DefaultTabID   = "default"
	DefaultTabName = "Properties"

	// FirstDialogName names the dialog created with a new project.
	FirstDialogName = "Dialog 1"

	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

var (
	ErrNoProject       = errors.New("designer: no project loaded")
	ErrNoActiveDialog  = errors.New("designer: no active dialog")
	ErrNotFound        = errors.New("designer: not found")
	ErrLastTab         = errors.New("designer: a dialog must keep at least one tab")
	ErrLastDialog      = errors.New("designer: a project must keep at least one dialog")
	ErrIndexOutOfRange = errors.New("designer: index out of range")
	ErrInvalidName     = errors.New("designer: invalid name")
	ErrTypeMismatch    = errors.New("designer: properties do not match block type")
)

// Option customises a Designer.
type Option func(*Designer)

// WithIDGenerator replaces the uuid based identifier source.
func WithIDGenerator(fn func() string) Option {
	return func(d *Designer) {
		if fn != nil {
			d.newID = fn
		}
	}
}

// WithClock replaces the time source used for lastModified.
func WithClock(fn func() time.Time) Option {
	return func(d *Designer) {
		if fn != nil {
			d.now = fn
		}
	}
}

// WithRegistry supplies the block catalog used by AddBlock.
func WithRegistry(registry *blocks.Registry) Option {
	return func(d *Designer) {
		if registry != nil {
			d.registry = registry
		}
	}
}

// Designer carries the collaborators commands need. It holds no state of its
// own and is safe for concurrent use.
type Designer struct {
	newID    func() string
	now      func() time.Time
	registry *blocks.Registry
}

// New constructs a Designer with uuid identifiers, the wall clock and the
// default block registry unless overridden.
func New(options ...Option) *Designer {
	d := &Designer{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	if d.registry == nil {
		d.registry = blocks.NewDefaultRegistry()
	}
	return d
}

// Registry exposes the block catalog in use.
func (d *Designer) Registry() *blocks.Registry {
	return d.registry
}

func (d *Designer) timestamp() string {
	return d.now().UTC().Format(timestampLayout)
}

func (d *Designer) newDialog(name string) model.Dialog {
	return model.Dialog{
		ID:     d.newID(),
		Name:   name,
		Tabs:   []model.Tab{{ID: DefaultTabID, Name: DefaultTabName}},
		Blocks: []model.Block{},
	}
}

// CreateProject replaces the state with a fresh project holding one empty
// dialog.
func (d *Designer) CreateProject(name string) (State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return State{}, fmt.Errorf("%w: project name is required", ErrInvalidName)
	}

	dialog := d.newDialog(FirstDialogName)
	project := &model.Project{
		ID:           d.newID(),
		Name:         name,
		Dialogs:      []model.Dialog{dialog},
		CustomBlocks: []model.CustomBlock{},
		LastModified: d.timestamp(),
	}
	return State{
		Project:           project,
		ActiveDialogID:    dialog.ID,
		ActiveTabID:       dialog.Tabs[0].ID,
		HasUnsavedChanges: true,
	}, nil
}

// LoadProject replaces the state with a copy of project, activating its
// first dialog and that dialog's first tab.
func (d *Designer) LoadProject(project model.Project) State {
	loaded := project.Clone()
	state := State{Project: &loaded}
	if len(loaded.Dialogs) > 0 {
		first := loaded.Dialogs[0]
		state.ActiveDialogID = first.ID
		if len(first.Tabs) > 0 {
			state.ActiveTabID = first.Tabs[0].ID
		}
	}
	return state
}

// SaveProject stamps lastModified, clears the unsaved flag and returns the
// project ready to be written.
func (d *Designer) SaveProject(s State) (State, model.Project, error) {
	if s.Project == nil {
		return s, model.Project{}, ErrNoProject
	}
	next := s.clone()
	next.Project.LastModified = d.timestamp()
	next.HasUnsavedChanges = false
	return next, next.Project.Clone(), nil
}

// UpdateProjectName renames the project.
func (d *Designer) UpdateProjectName(s State, name string) (State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, fmt.Errorf("%w: project name is required", ErrInvalidName)
	}
	return d.mutateProject(s, func(p *model.Project) error {
		p.Name = name
		return nil
	})
}

// mutateProject applies fn to a copy of the project, stamping lastModified
// and flagging unsaved changes on success. s is returned untouched on error.
func (d *Designer) mutateProject(s State, fn func(*model.Project) error) (State, error) {
	if s.Project == nil {
		return s, ErrNoProject
	}
	next := s.clone()
	if err := fn(next.Project); err != nil {
		return s, err
	}
	next.Project.LastModified = d.timestamp()
	next.HasUnsavedChanges = true
	return next, nil
}

// mutateActiveDialog is mutateProject scoped to the active dialog. fn may
// also adjust the returned state's selection fields.
func (d *Designer) mutateActiveDialog(s State, fn func(next *State, dialog *model.Dialog) error) (State, error) {
	if s.Project == nil {
		return s, ErrNoProject
	}
	next := s.clone()
	idx := next.activeDialogIndex()
	if idx < 0 {
		return s, ErrNoActiveDialog
	}
	if err := fn(&next, &next.Project.Dialogs[idx]); err != nil {
		return s, err
	}
	next.Project.LastModified = d.timestamp()
	next.HasUnsavedChanges = true
	return next, nil
}
