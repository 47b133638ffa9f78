package mode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zxo1/PrintPath/internal/logging"
)

// RejectedScript records a discovered script that failed validation, kept
// for surfacing in mode listings.
type RejectedScript struct {
	Path string
	Err  error
}

// Registry holds the named snapshot modes available to a processing run:
// compiled built-ins plus validated scripts loaded from disk. Not safe for
// concurrent mutation; build it once at startup.
type Registry struct {
	log      logging.Logger
	modes    map[string]Mode
	order    []string
	rejected []RejectedScript
}

// NewRegistry returns a registry seeded with the built-in modes.
func NewRegistry(log logging.Logger) *Registry {
	r := &Registry{
		log:   log,
		modes: make(map[string]Mode),
	}
	for _, m := range []Mode{Orbit{}, Arc{}, Fixed{}} {
		if err := r.Register(m); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a mode under its own name. Duplicate names are rejected so a
// script cannot silently shadow a built-in.
func (r *Registry) Register(m Mode) error {
	name := m.Name()
	if _, ok := r.modes[name]; ok {
		return fmt.Errorf("mode %q already registered", name)
	}
	r.modes[name] = m
	r.order = append(r.order, name)
	return nil
}

// Get returns the mode registered under name.
func (r *Registry) Get(name string) (Mode, error) {
	m, ok := r.modes[name]
	if !ok {
		return nil, &ModeNotFoundError{Name: name}
	}
	return m, nil
}

// List describes every registered mode in registration order.
func (r *Registry) List() []ModeInfo {
	out := make([]ModeInfo, 0, len(r.order))
	for _, name := range r.order {
		m := r.modes[name]
		out = append(out, ModeInfo{
			Name:        m.Name(),
			Description: m.Description(),
			Schema:      m.Schema(),
		})
	}
	return out
}

// Rejected returns the scripts that failed validation during LoadScripts.
func (r *Registry) Rejected() []RejectedScript {
	return r.rejected
}

// LoadScripts discovers script modes under dir and registers the valid ones.
// A missing directory is not an error. Individual invalid scripts are logged,
// recorded as rejected and skipped; one bad file never aborts discovery.
func (r *Registry) LoadScripts(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading script directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ScriptExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		script, err := LoadScript(path, r)
		if err != nil {
			r.log.Warn("rejecting script mode", "path", path, "error", err)
			r.rejected = append(r.rejected, RejectedScript{Path: path, Err: err})
			continue
		}
		if err := r.Register(script); err != nil {
			r.log.Warn("rejecting script mode", "path", path, "error", err)
			r.rejected = append(r.rejected, RejectedScript{Path: path, Err: err})
			continue
		}
		r.log.Info("loaded script mode", "name", script.Name(), "path", path)
	}
	return nil
}

// Invoke resolves settings against the mode's schema and runs it. Any error
// or panic inside the mode comes back as a ModeExecutionError; an unknown
// name comes back as a ModeNotFoundError.
func (r *Registry) Invoke(name string, settings Settings, lines []string) (res Result, err error) {
	m, err := r.Get(name)
	if err != nil {
		return Result{}, err
	}
	resolved := m.Schema().Resolve(settings)

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("mode panicked", "mode", name, "panic", rec)
			res = Result{}
			err = &ModeExecutionError{Mode: name, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	res, err = m.Run(resolved, lines)
	if err != nil {
		var execErr *ModeExecutionError
		if errors.As(err, &execErr) {
			return Result{}, err
		}
		return Result{}, &ModeExecutionError{Mode: name, Err: err}
	}
	return res, nil
}
