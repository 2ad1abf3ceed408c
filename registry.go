package logzero

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gobwas/glob"
)

// DefaultLoggerName is the name of the process-wide default logger.
const DefaultLoggerName = "logzero_default"

// Registry handles the lifecycle and access to named logger instances.
// Each name maps to exactly one Logger for the lifetime of the registry.
type Registry struct {
	mu      sync.Mutex
	loggers map[string]*Logger
}

// NewRegistry creates an empty logger registry.
func NewRegistry() *Registry {
	return &Registry{loggers: make(map[string]*Logger)}
}

// Process-wide registry backing the package-level functions.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// GetOrCreate retrieves the logger with the given name, creating it with
// a DEBUG threshold and no destinations if absent. Requesting an existing
// name returns the existing instance, never a second one.
func (r *Registry) GetOrCreate(name string) *Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[name]; ok {
		return l
	}
	l := &Logger{name: name, level: DEBUG}
	r.loggers[name] = l
	return l
}

// Get retrieves a logger by name without creating it.
func (r *Registry) Get(name string) (*Logger, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loggers[name]
	return l, ok
}

// Names returns the sorted names of all registered loggers.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetLevelPattern applies a level to every currently registered logger
// whose name matches the glob pattern, e.g. "app.db.*". Separator for
// the '*' wildcard is '.'.
func (r *Registry) SetLevelPattern(pattern string, level Level) error {
	g, err := glob.Compile(pattern, '.')
	if err != nil {
		return fmt.Errorf("invalid logger name pattern '%s': %w", pattern, err)
	}

	r.mu.Lock()
	matched := make([]*Logger, 0, len(r.loggers))
	for name, l := range r.loggers {
		if g.Match(name) {
			matched = append(matched, l)
		}
	}
	r.mu.Unlock()

	for _, l := range matched {
		l.SetLevel(level, false)
	}
	return nil
}
