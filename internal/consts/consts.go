// Package consts implements the global constant table and its call-site
// caching protocol. The table is append-only: a constant, once defined,
// keeps its position and value for the life of the process, which is what
// makes positional cache slots safe to hand out.
package consts

import (
	"iter"
	"strings"
	"sync"

	"github.com/lumenlang/lumen/internal/values"
)

// CacheSlot is a per-call-site memo. A call site owns exactly one slot and
// passes it by pointer; the zero value means "not yet resolved". A slot
// must never be shared between concurrent call sites — a site without
// stable storage should pass nil and take the name lookup every time.
type CacheSlot struct {
	pos uint32 // table position + 1; 0 is the unset sentinel
}

func (s *CacheSlot) IsResolved() bool { return s.pos != 0 }

type entry struct {
	name  string
	value values.Value
}

type Table struct {
	mu      sync.RWMutex
	entries []entry
	index   map[string]uint32 // exact spelling -> position
	folded  map[string]uint32 // lower spelling -> position, ignore-case constants only
}

func NewTable() *Table {
	return &Table{
		index:  make(map[string]uint32),
		folded: make(map[string]uint32),
	}
}

// Get resolves a constant by name. Lookup is case-sensitive unless the
// constant was defined ignore-case.
func (t *Table) Get(name string) (values.Value, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	pos, ok := t.lookupLocked(name)
	if !ok {
		return nil, false
	}
	return t.entries[pos].value, true
}

// GetCached behaves exactly like Get but amortizes the name lookup through
// slot. On the first hit the resolved position is stored into the slot;
// later calls fetch by position and skip the map entirely. A nil slot
// degrades to Get.
func (t *Table) GetCached(name string, slot *CacheSlot) (values.Value, bool) {
	if slot == nil {
		return t.Get(name)
	}

	if slot.IsResolved() {
		t.mu.RLock()
		v := t.entries[slot.pos-1].value
		t.mu.RUnlock()
		return v, true
	}

	t.mu.RLock()
	pos, ok := t.lookupLocked(name)
	if !ok {
		t.mu.RUnlock()
		return nil, false
	}
	v := t.entries[pos].value
	t.mu.RUnlock()

	slot.pos = pos + 1
	return v, true
}

// Define registers a new constant. It returns false, without overwriting,
// when the name is already taken. With ignoreCase the constant becomes
// reachable under any spelling of the name; redefinition policy is decided
// here, at definition time, never at read time.
func (t *Table) Define(name string, v values.Value, ignoreCase bool) bool {
	return t.DefineCached(name, v, ignoreCase, nil)
}

// DefineCached is Define plus a cache slot update, so a read co-located
// with the definition skips re-resolution.
func (t *Table) DefineCached(name string, v values.Value, ignoreCase bool, slot *CacheSlot) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, taken := t.lookupLocked(name); taken {
		return false
	}
	if ignoreCase {
		if _, taken := t.folded[strings.ToLower(name)]; taken {
			return false
		}
	}

	pos := uint32(len(t.entries))
	t.entries = append(t.entries, entry{name: name, value: v})
	t.index[name] = pos
	if ignoreCase {
		t.folded[strings.ToLower(name)] = pos
	}
	if slot != nil {
		slot.pos = pos + 1
	}
	return true
}

func (t *Table) IsDefined(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.lookupLocked(name)
	return ok
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// All enumerates constants in definition order. The sequence is finite and
// restartable; each restart observes the table as of that restart (the
// table is append-only, so no yielded pair ever goes stale).
func (t *Table) All() iter.Seq2[string, values.Value] {
	return func(yield func(string, values.Value) bool) {
		t.mu.RLock()
		snapshot := t.entries
		t.mu.RUnlock()
		for _, e := range snapshot {
			if !yield(e.name, e.value) {
				return
			}
		}
	}
}

func (t *Table) lookupLocked(name string) (uint32, bool) {
	if pos, ok := t.index[name]; ok {
		return pos, true
	}
	pos, ok := t.folded[strings.ToLower(name)]
	return pos, ok
}
