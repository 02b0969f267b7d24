// Package runtime implements the dynamic invocation facade of the Lumen
// host runtime: routine declaration and dispatch by name, caller-aware
// instance creation, constant lookup with call-site caching, and the
// extension query surface.
package runtime

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumenlang/lumen/internal/consts"
	"github.com/lumenlang/lumen/internal/extensions"
	"github.com/lumenlang/lumen/internal/symbols"
)

// Context is the execution environment of one logical run (one request,
// one script). It borrows the symbol table, constant table and extension
// registry; those may be process-wide and outlive the context. A Context
// is meant for a single logical thread, the borrowed tables are safe to
// share.
type Context struct {
	id      uuid.UUID
	symbols *symbols.Table
	consts  *consts.Table
	exts    *extensions.Registry

	mu      sync.Mutex
	scripts []string
	seen    map[string]struct{}

	log *zap.SugaredLogger
}

type Option func(*Context)

// WithSymbols makes the context borrow an existing symbol table instead of
// creating a fresh one.
func WithSymbols(t *symbols.Table) Option {
	return func(c *Context) { c.symbols = t }
}

// WithConstants makes the context borrow an existing constant table.
func WithConstants(t *consts.Table) Option {
	return func(c *Context) { c.consts = t }
}

// WithRegistry overrides the extension registry, mainly for tests.
func WithRegistry(r *extensions.Registry) Option {
	return func(c *Context) { c.exts = r }
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Context) { c.log = log }
}

// NewContext builds a context and declares every registered extension's
// routines and types into its symbol table, so extension capabilities are
// callable by name from the start.
func NewContext(opts ...Option) *Context {
	c := &Context{
		id:   uuid.New(),
		seen: make(map[string]struct{}),
		log:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.symbols == nil {
		c.symbols = symbols.NewTable()
	}
	if c.consts == nil {
		c.consts = consts.NewTable()
	}
	if c.exts == nil {
		c.exts = extensions.Default()
	}

	for _, name := range c.exts.List() {
		if d, ok := c.exts.Lookup(name); ok {
			c.declareExtension(d)
		}
	}
	return c
}

func (c *Context) ID() uuid.UUID { return c.id }

// Symbols exposes the borrowed symbol table for collaborators that declare
// types ahead of instantiation.
func (c *Context) Symbols() *symbols.Table { return c.symbols }

func (c *Context) declareExtension(d *extensions.Descriptor) {
	for _, name := range d.RoutineNames() {
		if !c.symbols.DeclareRoutine(symbols.NewRoutine(name, d.Routines[name])) {
			// First declaration wins; a shared table may already carry it.
			c.log.Debugw("extension routine already declared", "extension", d.Name, "routine", name)
		}
	}
	for _, td := range d.Types {
		if !c.symbols.DeclareType(td) {
			c.log.Debugw("extension type already declared", "extension", d.Name, "type", td.Name())
		}
	}
}

// LoadedExtensions lists the names of all loaded extensions.
func (c *Context) LoadedExtensions() []string { return c.exts.List() }

func (c *Context) IsExtensionLoaded(name string) bool { return c.exts.IsLoaded(name) }

// ExtensionRoutines lists the routines contributed by one extension.
func (c *Context) ExtensionRoutines(name string) ([]string, bool) {
	d, ok := c.exts.Lookup(name)
	if !ok {
		return nil, false
	}
	return d.RoutineNames(), true
}

// ExtensionTypes lists the types contributed by one extension.
func (c *Context) ExtensionTypes(name string) ([]string, bool) {
	d, ok := c.exts.Lookup(name)
	if !ok {
		return nil, false
	}
	return d.TypeNames(), true
}

// MarkScriptIncluded records a script as included in this context.
// Returns false when the script was already recorded.
func (c *Context) MarkScriptIncluded(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.seen[path]; dup {
		return false
	}
	c.seen[path] = struct{}{}
	c.scripts = append(c.scripts, path)
	return true
}

// IncludedScripts returns the scripts included so far, in inclusion order.
func (c *Context) IncludedScripts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.scripts))
	copy(out, c.scripts)
	return out
}
