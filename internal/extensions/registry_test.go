package extensions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenlang/lumen/internal/symbols"
	"github.com/lumenlang/lumen/internal/values"
)

func testDescriptor(name string) *Descriptor {
	return &Descriptor{
		Name: name,
		Routines: map[string]values.BuiltinFunc{
			"zeta": func(args ...values.Value) (values.Value, error) { return &values.Nil{}, nil },
			"alef": func(args ...values.Value) (values.Value, error) { return &values.Nil{}, nil },
		},
		Types: []*symbols.TypeDescriptor{
			symbols.NewType("Widget"),
		},
	}
}

func TestRegisterAndQuery(t *testing.T) {
	r := NewRegistry()

	require.True(t, r.Register(testDescriptor("widgets")))
	require.False(t, r.Register(testDescriptor("widgets")), "re-registration must be rejected")
	require.True(t, r.Register(testDescriptor("gadgets")))

	require.True(t, r.IsLoaded("widgets"))
	require.False(t, r.IsLoaded("missing"))
	require.Equal(t, []string{"gadgets", "widgets"}, r.List())

	d, ok := r.Lookup("widgets")
	require.True(t, ok)
	require.Equal(t, []string{"alef", "zeta"}, d.RoutineNames())
	require.Equal(t, []string{"Widget"}, d.TypeNames())
}

func TestDefaultRegistry(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	require.True(t, Register(testDescriptor("proc")))
	require.True(t, Default().IsLoaded("proc"))
	require.Equal(t, []string{"proc"}, Default().List())
}
