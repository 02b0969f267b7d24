package runtime

import (
	"iter"

	"github.com/lumenlang/lumen/internal/consts"
	"github.com/lumenlang/lumen/internal/values"
)

// Constant resolves a global constant by name.
func (c *Context) Constant(name string) (values.Value, bool) {
	return c.consts.Get(name)
}

// ConstantCached resolves a constant through a call-site cache slot. The
// slot belongs to exactly one call site; see consts.CacheSlot.
func (c *Context) ConstantCached(name string, slot *consts.CacheSlot) (values.Value, bool) {
	return c.consts.GetCached(name, slot)
}

// DefineConstant registers a constant. Returns false, without
// overwriting, when the name is taken. ignoreCase makes the constant
// reachable under any spelling.
func (c *Context) DefineConstant(name string, v values.Value, ignoreCase bool) bool {
	return c.consts.Define(name, v, ignoreCase)
}

// DefineConstantCached is DefineConstant plus a slot update for a read
// co-located with the definition.
func (c *Context) DefineConstantCached(name string, v values.Value, ignoreCase bool, slot *consts.CacheSlot) bool {
	return c.consts.DefineCached(name, v, ignoreCase, slot)
}

func (c *Context) IsConstantDefined(name string) bool {
	return c.consts.IsDefined(name)
}

// Constants enumerates defined constants in definition order.
func (c *Context) Constants() iter.Seq2[string, values.Value] {
	return c.consts.All()
}

// DefineLazyConstant always fails. Deferred constant evaluation is a
// deliberate capability gap of this facade, not a missing feature.
func (c *Context) DefineLazyConstant(name string, getter func() values.Value) error {
	return &UnsupportedOperationError{Op: "lazy constant " + name}
}
