package consts

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenlang/lumen/internal/values"
)

func TestDefineAndGet(t *testing.T) {
	tab := NewTable()

	require.True(t, tab.Define("PI", &values.Float{Value: 3.14}, false))
	v, ok := tab.Get("PI")
	require.True(t, ok)
	require.Equal(t, 3.14, v.(*values.Float).Value)

	// Case-sensitive by default.
	_, ok = tab.Get("pi")
	require.False(t, ok)

	require.True(t, tab.IsDefined("PI"))
	require.False(t, tab.IsDefined("pi"))
}

func TestDefineNoOverwrite(t *testing.T) {
	tab := NewTable()

	require.True(t, tab.Define("PI", &values.Float{Value: 3.14}, false))
	require.False(t, tab.Define("PI", &values.Float{Value: 3.0}, false))

	v, ok := tab.Get("PI")
	require.True(t, ok)
	require.Equal(t, 3.14, v.(*values.Float).Value, "losing definition must not overwrite")
}

func TestDefineIgnoreCase(t *testing.T) {
	tab := NewTable()

	require.True(t, tab.Define("Greeting", &values.String{Value: "hi"}, true))

	for _, name := range []string{"Greeting", "GREETING", "greeting"} {
		v, ok := tab.Get(name)
		require.True(t, ok, "lookup %s", name)
		require.Equal(t, "hi", v.(*values.String).Value)
	}

	// Any spelling is taken now.
	require.False(t, tab.Define("GREETING", &values.String{Value: "yo"}, false))
	require.False(t, tab.Define("greeting", &values.String{Value: "yo"}, true))
}

func TestCachedLookupMatchesUncached(t *testing.T) {
	tab := NewTable()
	require.True(t, tab.Define("X", &values.Integer{Value: 7}, false))

	var slot CacheSlot
	require.False(t, slot.IsResolved())

	// First cached call resolves and populates the slot.
	v, ok := tab.GetCached("X", &slot)
	require.True(t, ok)
	require.True(t, slot.IsResolved())

	uncached, ok := tab.Get("X")
	require.True(t, ok)
	require.Same(t, uncached, v)

	// Subsequent calls go through the position and never diverge, even
	// after the table grows.
	for i := 0; i < 100; i++ {
		require.True(t, tab.Define(fmt.Sprintf("PAD_%d", i), &values.Integer{Value: int64(i)}, false))
		cached, ok := tab.GetCached("X", &slot)
		require.True(t, ok)
		require.Same(t, uncached, cached)
	}
}

func TestCachedLookupMiss(t *testing.T) {
	tab := NewTable()

	var slot CacheSlot
	_, ok := tab.GetCached("MISSING", &slot)
	require.False(t, ok)
	require.False(t, slot.IsResolved(), "a miss must leave the slot unset")

	// Nil slot is the always-miss degradation.
	require.True(t, tab.Define("Y", &values.Integer{Value: 1}, false))
	v, ok := tab.GetCached("Y", nil)
	require.True(t, ok)
	require.Equal(t, int64(1), v.(*values.Integer).Value)
}

func TestDefineCachedPopulatesSlot(t *testing.T) {
	tab := NewTable()

	var slot CacheSlot
	require.True(t, tab.DefineCached("Z", &values.Integer{Value: 9}, false, &slot))
	require.True(t, slot.IsResolved())

	v, ok := tab.GetCached("Z", &slot)
	require.True(t, ok)
	require.Equal(t, int64(9), v.(*values.Integer).Value)

	// A failed definition leaves the caller's slot alone.
	var second CacheSlot
	require.False(t, tab.DefineCached("Z", &values.Integer{Value: 10}, false, &second))
	require.False(t, second.IsResolved())
}

func TestAllInDefinitionOrder(t *testing.T) {
	tab := NewTable()
	names := []string{"A", "B", "C"}
	for i, n := range names {
		require.True(t, tab.Define(n, &values.Integer{Value: int64(i)}, false))
	}

	var got []string
	for name, v := range tab.All() {
		got = append(got, name)
		require.NotNil(t, v)
	}
	require.Equal(t, names, got)

	// Restarting reflects later definitions.
	require.True(t, tab.Define("D", &values.Integer{Value: 3}, false))
	got = got[:0]
	for name := range tab.All() {
		got = append(got, name)
	}
	require.Equal(t, []string{"A", "B", "C", "D"}, got)
}

func TestConcurrentDistinctDefines(t *testing.T) {
	tab := NewTable()

	var wg sync.WaitGroup
	defined := make([]bool, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			defined[n] = tab.Define(fmt.Sprintf("C_%d", n), &values.Integer{Value: int64(n)}, false)
		}(i)
	}
	wg.Wait()

	for i, ok := range defined {
		require.True(t, ok, "define C_%d", i)
	}
	require.Equal(t, 32, tab.Len())
	for i := 0; i < 32; i++ {
		v, ok := tab.Get(fmt.Sprintf("C_%d", i))
		require.True(t, ok)
		require.Equal(t, int64(i), v.(*values.Integer).Value)
	}
}

func TestConcurrentSameNameDefineIsAtomic(t *testing.T) {
	tab := NewTable()

	var wg sync.WaitGroup
	wins := make([]bool, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			wins[n] = tab.Define("ONCE", &values.Integer{Value: int64(n)}, false)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, w := range wins {
		if w {
			winners++
		}
	}
	require.Equal(t, 1, winners, "exactly one definition may win")

	_, ok := tab.Get("ONCE")
	require.True(t, ok)
}
