// Package symbols holds the process-wide tables of declared routines and
// types. Tables may outlive any single runtime context and be read from
// several contexts at once; all mutation happens under the table lock.
package symbols

import (
	"sort"
	"strings"
	"sync"
)

// Fold normalizes a routine or type name per the guest convention:
// routine and class names are case-insensitive, so lookups fold case.
func Fold(name string) string {
	return strings.ToLower(name)
}

type Table struct {
	mu       sync.RWMutex
	routines map[string]*RoutineHandle
	types    map[string]*TypeDescriptor
}

func NewTable() *Table {
	return &Table{
		routines: make(map[string]*RoutineHandle),
		types:    make(map[string]*TypeDescriptor),
	}
}

// DeclareRoutine registers a routine under its folded name. Redeclaration
// is rejected: the first declaration wins and false is returned.
func (t *Table) DeclareRoutine(h *RoutineHandle) bool {
	key := Fold(h.Name())
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.routines[key]; exists {
		return false
	}
	t.routines[key] = h
	return true
}

// LookupRoutine resolves a declared routine by name, folding case.
func (t *Table) LookupRoutine(name string) (*RoutineHandle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	h, ok := t.routines[Fold(name)]
	return h, ok
}

// DeclareType registers a type descriptor under its folded name. Same
// first-wins policy as routines.
func (t *Table) DeclareType(td *TypeDescriptor) bool {
	key := Fold(td.Name())
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.types[key]; exists {
		return false
	}
	t.types[key] = td
	return true
}

// LookupType resolves a declared type by name, folding case.
func (t *Table) LookupType(name string) (*TypeDescriptor, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	td, ok := t.types[Fold(name)]
	return td, ok
}

// RoutineNames returns the declared spellings of all routines, sorted.
func (t *Table) RoutineNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.routines))
	for _, h := range t.routines {
		names = append(names, h.Name())
	}
	sort.Strings(names)
	return names
}

// TypeNames returns the declared spellings of all types, sorted.
func (t *Table) TypeNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.types))
	for _, td := range t.types {
		names = append(names, td.Name())
	}
	sort.Strings(names)
	return names
}
