package shortcut

import (
	"log"
	"os"
	"sort"
	"sync"
)

// Handler is invoked when its shortcut fires.
type Handler func(event *KeyEvent)

// Observer is notified after a shortcut handler has run.
type Observer func(s Shortcut, event *KeyEvent)

// Shortcut is a registry entry
type Shortcut struct {
	Combo          string
	Description    string
	PreventDefault bool
	Handler        Handler
}

// Option configures a single registration
type Option func(*Shortcut)

// WithPreventDefault controls whether the host's default action is cancelled
// when the shortcut fires. Shortcuts prevent the default unless told otherwise.
func WithPreventDefault(prevent bool) Option {
	return func(s *Shortcut) {
		s.PreventDefault = prevent
	}
}

// Dispatcher owns the combo -> shortcut table and routes keydown events.
type Dispatcher struct {
	mu        sync.RWMutex
	shortcuts map[string]Shortcut
	observers []Observer
	presenter HelpPresenter
	logger    *log.Logger
	bound     bool
}

// DispatcherOption configures a Dispatcher
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger used for registration warnings.
func WithLogger(logger *log.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithPresenter sets the facility that displays the help table.
func WithPresenter(p HelpPresenter) DispatcherOption {
	return func(d *Dispatcher) {
		d.presenter = p
	}
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		shortcuts: make(map[string]Shortcut),
		logger:    log.New(os.Stderr, "[shortcut] ", log.LstdFlags),
		presenter: &WriterPresenter{W: os.Stdout},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Init binds the dispatcher to an event source. Only the first call binds;
// later calls are no-ops.
func (d *Dispatcher) Init(source Source) {
	if source == nil {
		return
	}

	d.mu.Lock()
	if d.bound {
		d.mu.Unlock()
		return
	}
	d.bound = true
	d.mu.Unlock()

	source.OnKeydown(func(event *KeyEvent) {
		d.HandleKeydown(event)
	})
	d.logf("ready")
}

// Register binds combo to handler. Invalid registrations are logged and
// dropped. An existing entry for the same combo is replaced.
func (d *Dispatcher) Register(combo string, handler Handler, description string, opts ...Option) {
	normalized, ok := Normalize(combo)
	if !ok || handler == nil {
		d.logf("invalid shortcut registration: %q", combo)
		return
	}

	s := Shortcut{
		Combo:          normalized,
		Description:    description,
		PreventDefault: true,
		Handler:        handler,
	}
	for _, opt := range opts {
		opt(&s)
	}

	d.mu.Lock()
	d.shortcuts[normalized] = s
	d.mu.Unlock()
}

// Unregister removes the shortcut for combo if one exists.
func (d *Dispatcher) Unregister(combo string) {
	normalized, ok := Normalize(combo)
	if !ok {
		return
	}

	d.mu.Lock()
	delete(d.shortcuts, normalized)
	d.mu.Unlock()
}

// Lookup returns the shortcut registered for combo.
func (d *Dispatcher) Lookup(combo string) (Shortcut, bool) {
	normalized, ok := Normalize(combo)
	if !ok {
		return Shortcut{}, false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.shortcuts[normalized]
	return s, ok
}

// Shortcuts returns all registered shortcuts sorted by combo.
func (d *Dispatcher) Shortcuts() []Shortcut {
	d.mu.RLock()
	list := make([]Shortcut, 0, len(d.shortcuts))
	for _, s := range d.shortcuts {
		list = append(list, s)
	}
	d.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].Combo < list[j].Combo
	})
	return list
}

// AddObserver registers a callback run after every fired shortcut.
func (d *Dispatcher) AddObserver(o Observer) {
	if o == nil {
		return
	}
	d.mu.Lock()
	d.observers = append(d.observers, o)
	d.mu.Unlock()
}

// SetPresenter replaces the help presenter.
func (d *Dispatcher) SetPresenter(p HelpPresenter) {
	d.mu.Lock()
	d.presenter = p
	d.mu.Unlock()
}

// SetLogger replaces the logger used for registration warnings.
func (d *Dispatcher) SetLogger(logger *log.Logger) {
	if logger == nil {
		return
	}
	d.mu.Lock()
	d.logger = logger
	d.mu.Unlock()
}

func (d *Dispatcher) logf(format string, args ...interface{}) {
	d.mu.RLock()
	logger := d.logger
	d.mu.RUnlock()
	logger.Printf(format, args...)
}

// ShowHelp hands the sorted shortcut table to the help presenter.
func (d *Dispatcher) ShowHelp() {
	rows := HelpRows(d.Shortcuts())

	d.mu.RLock()
	p := d.presenter
	d.mu.RUnlock()

	if p == nil {
		d.logf("no help presenter configured")
		return
	}
	p.Present(HelpTitle, rows)
}

// HandleKeydown dispatches a keydown event. It reports whether a handler ran.
// Events targeting editable elements never fire shortcuts.
func (d *Dispatcher) HandleKeydown(event *KeyEvent) bool {
	if event == nil || IsEditableTarget(event.Target) {
		return false
	}

	combo, ok := event.Combo()
	if !ok {
		return false
	}

	d.mu.RLock()
	s, found := d.shortcuts[combo]
	observers := d.observers
	d.mu.RUnlock()

	if !found {
		return false
	}

	if s.PreventDefault {
		event.PreventDefault()
		event.StopPropagation()
	}

	// Called without the lock held so handlers may (un)register shortcuts
	s.Handler(event)

	for _, o := range observers {
		o(s, event)
	}
	return true
}
