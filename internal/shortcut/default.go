package shortcut

import "sync"

var (
	defaultOnce       sync.Once
	defaultDispatcher *Dispatcher
)

// Default returns the process-wide dispatcher.
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		defaultDispatcher = NewDispatcher()
	})
	return defaultDispatcher
}

// Init binds the process-wide dispatcher to source.
func Init(source Source) {
	Default().Init(source)
}

// Register adds a shortcut to the process-wide dispatcher.
func Register(combo string, handler Handler, description string, opts ...Option) {
	Default().Register(combo, handler, description, opts...)
}

// Unregister removes a shortcut from the process-wide dispatcher.
func Unregister(combo string) {
	Default().Unregister(combo)
}

// ShowHelp displays the process-wide shortcut table.
func ShowHelp() {
	Default().ShowHelp()
}
