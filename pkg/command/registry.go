package command

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

// Method is one invocable command on a handler.
type Method func() error

// Handler exposes the methods of one command group, e.g. "apps".
type Handler interface {
	Method(name string) (Method, bool)
}

// Factory builds a fresh handler for a single invocation.
type Factory func(inv *Invocation) Handler

// Loader registers commands into a registry.
type Loader func(r *Registry) error

// Definition describes one command. Name is the exact lookup key.
type Definition struct {
	Name    string
	Summary string
	Usage   string
	Group   string
	Method  string
}

// Options are the flags every command accepts.
type Options struct {
	App     string
	Confirm string
}

// Invocation is the per-run state a handler is built from. Its App honours
// --app before falling back to the capability set.
type Invocation struct {
	Capabilities
	Name    string
	Args    []string
	Options Options
}

func (inv *Invocation) App() (string, error) {
	if inv.Options.App != "" {
		return inv.Options.App, nil
	}
	return inv.Capabilities.App()
}

// Resolved pairs a handler with the method to invoke on it.
type Resolved struct {
	Definition Definition
	Handler    Handler
	Method     Method
	Invocation *Invocation
}

func (r *Resolved) Invoke() error {
	return r.Method()
}

// Registry maps command names to definitions and the factories that serve them.
type Registry struct {
	mu        sync.RWMutex
	defs      map[string]Definition
	factories map[string]Factory

	once    sync.Once
	loadErr error
}

func NewRegistry() *Registry {
	return &Registry{
		defs:      make(map[string]Definition),
		factories: make(map[string]Factory),
	}
}

// RegisterGroup registers a handler factory and the commands it serves.
// Registering a name twice is an error and leaves the registry unchanged.
// A group may be registered again to add commands; each factory keeps
// serving the commands it was registered with.
func (r *Registry) RegisterGroup(group string, factory Factory, defs ...Definition) error {
	if factory == nil {
		return fmt.Errorf("nil factory for group %s", group)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prepared := make([]Definition, 0, len(defs))
	seen := map[string]bool{}
	for _, def := range defs {
		g, m := SplitName(def.Name)
		if g != group {
			return fmt.Errorf("command %s does not belong to group %s", def.Name, group)
		}
		if _, exists := r.defs[def.Name]; exists || seen[def.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateCommand, def.Name)
		}
		seen[def.Name] = true
		def.Group, def.Method = g, m
		prepared = append(prepared, def)
	}

	for _, def := range prepared {
		r.defs[def.Name] = def
		r.factories[def.Name] = factory
	}
	return nil
}

// Load runs loaders the first time it is called. Later calls return the
// first result without registering anything again.
func (r *Registry) Load(loaders ...Loader) error {
	r.once.Do(func() {
		for _, load := range loaders {
			if err := load(r); err != nil {
				r.loadErr = err
				return
			}
		}
	})
	return r.loadErr
}

// Resolve looks name up by exact match.
func (r *Registry) Resolve(name string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]
	if !ok {
		return Definition{}, &CommandNotFoundError{Name: name}
	}
	return def, nil
}

// Definitions returns every registered command sorted by name.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.defs))
	for _, def := range r.defs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Prepare resolves name, builds its handler over caps and parses args.
// Nothing in the handler runs until the returned command is invoked.
func (r *Registry) Prepare(name string, args []string, caps Capabilities) (*Resolved, error) {
	def, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	factory := r.factories[def.Name]
	r.mu.RUnlock()

	opts, positional, err := parseOptions(name, args)
	if err != nil {
		return nil, Failedf(err, "%v", err)
	}

	inv := &Invocation{Capabilities: caps, Name: name, Args: positional, Options: opts}
	handler := factory(inv)
	method, ok := handler.Method(def.Method)
	if !ok {
		return nil, &CommandNotFoundError{Name: name}
	}

	return &Resolved{Definition: def, Handler: handler, Method: method, Invocation: inv}, nil
}

// parseOptions reads the global flags out of args. Anything else, unknown
// flags included, is returned in order as a positional argument.
func parseOptions(name string, args []string) (Options, []string, error) {
	var opts Options
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&opts.App, "app", "a", "", "app to run command against")
	fs.StringVar(&opts.Confirm, "confirm", "", "confirm a destructive action for this app")

	known, positional := splitFlags(fs, args)
	if err := fs.Parse(known); err != nil {
		return Options{}, nil, err
	}
	return opts, positional, nil
}

// splitFlags separates the flags fs defines, with their values, from the
// rest of args. Everything after "--" is positional.
func splitFlags(fs *pflag.FlagSet, args []string) (known, positional []string) {
	positional = []string{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		attached, ok := lookupFlag(fs, arg)
		if !ok {
			positional = append(positional, arg)
			continue
		}
		known = append(known, arg)
		if !attached && i+1 < len(args) {
			i++
			known = append(known, args[i])
		}
	}
	return known, positional
}

// lookupFlag reports whether arg names a flag in fs and whether its value
// is attached ("--app=foo", "-afoo").
func lookupFlag(fs *pflag.FlagSet, arg string) (attached, ok bool) {
	switch {
	case strings.HasPrefix(arg, "--") && len(arg) > 2:
		name, _, hasValue := strings.Cut(arg[2:], "=")
		return hasValue, fs.Lookup(name) != nil
	case strings.HasPrefix(arg, "-") && len(arg) > 1:
		return len(arg) > 2, fs.ShorthandLookup(arg[1:2]) != nil
	}
	return false, false
}
