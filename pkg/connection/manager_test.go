package connection

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spidergraph/spider/pkg/driver"
	"github.com/spidergraph/spider/pkg/errors"
)

type fakeDriver struct {
	name       string
	definition map[string]interface{}
	closed     bool
}

func (f *fakeDriver) Name() string { return f.name }
func (f *fakeDriver) Close(context.Context) error {
	f.closed = true
	return nil
}

func testRegistry(t *testing.T) *driver.Registry {
	t.Helper()
	r := driver.NewRegistry()
	for _, name := range []string{"X", "Y"} {
		name := name
		require.NoError(t, r.Register(name, func(def map[string]interface{}) (driver.Driver, error) {
			return &fakeDriver{name: name, definition: def}, nil
		}))
	}
	return r
}

func manifest() map[string]interface{} {
	return map[string]interface{}{
		"default": "a",
		"a":       map[string]interface{}{"driver": "X", "hostname": "localhost"},
		"b":       map[string]interface{}{"driver": "Y"},
		"cache":   map[string]interface{}{"driver": "X"},
	}
}

func TestFetch(t *testing.T) {
	m := NewManager(testRegistry(t))
	m.Reset(manifest())

	def, err := m.Fetch("")
	require.NoError(t, err)
	assert.Equal(t, "X", def.Driver())
	assert.Equal(t, "localhost", def["hostname"])

	def, err = m.Fetch("b")
	require.NoError(t, err)
	assert.Equal(t, "Y", def.Driver())

	_, err = m.Fetch("c")
	assert.True(t, stderrors.Is(err, errors.ErrConnectionNotFound))
}

func TestFetchReturnsCopies(t *testing.T) {
	m := NewManager(testRegistry(t))
	m.Reset(manifest())

	def, err := m.Fetch("a")
	require.NoError(t, err)
	def["hostname"] = "changed"

	again, err := m.Fetch("a")
	require.NoError(t, err)
	assert.Equal(t, "localhost", again["hostname"])
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name     string
		manifest map[string]interface{}
		alias    string
	}{
		{"empty manifest default", map[string]interface{}{}, ""},
		{"empty manifest alias", map[string]interface{}{}, "a"},
		{"no default", map[string]interface{}{"orient": map[string]interface{}{}}, ""},
		{"dangling default", map[string]interface{}{"default": "notexistant", "does_exist": map[string]interface{}{"driver": "nope"}}, ""},
		{"non-string default", map[string]interface{}{"default": 3, "a": map[string]interface{}{"driver": "X"}}, ""},
		{"self-referencing default", map[string]interface{}{"default": "default"}, ""},
		{"explicit default key", map[string]interface{}{"default": "a", "a": map[string]interface{}{}}, "default"},
		{"scalar definition", map[string]interface{}{"a": "X"}, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(testRegistry(t))
			m.Reset(tt.manifest)

			def, err := m.Fetch(tt.alias)
			assert.Nil(t, def)
			assert.True(t, errors.IsType(err, errors.ErrorTypeConnectionNotFound), "got %v", err)
		})
	}
}

func TestResetReplacesManifest(t *testing.T) {
	m := NewManager(testRegistry(t))
	m.Reset(manifest())
	m.Reset(map[string]interface{}{"z": map[string]interface{}{"driver": "Y"}})

	_, err := m.Fetch("a")
	assert.Error(t, err)
	assert.Equal(t, []string{"z"}, m.Aliases())

	m.Reset(nil)
	assert.Empty(t, m.All())
}

func TestResetCopiesInput(t *testing.T) {
	in := manifest()
	m := NewManager(testRegistry(t))
	m.Reset(in)

	in["a"].(map[string]interface{})["driver"] = "Y"
	def, err := m.Fetch("a")
	require.NoError(t, err)
	assert.Equal(t, "X", def.Driver())
}

func TestAddOverwrites(t *testing.T) {
	m := NewManager(testRegistry(t))
	m.Add("a", map[string]interface{}{"driver": "X"})
	m.Add("a", map[string]interface{}{"driver": "Y"})
	m.SetDefault("a")

	def, err := m.Fetch("")
	require.NoError(t, err)
	assert.Equal(t, "Y", def.Driver())
}

func TestMake(t *testing.T) {
	m := NewManager(testRegistry(t))
	m.Reset(manifest())

	conn, err := m.Make("")
	require.NoError(t, err)
	assert.Equal(t, "a", conn.Alias())
	assert.Equal(t, "X", conn.DriverName())
	assert.NotEmpty(t, conn.ID())
	assert.Equal(t, "localhost", conn.Definition()["hostname"])
	assert.Equal(t, "localhost", conn.Driver().(*fakeDriver).definition["hostname"])

	require.NoError(t, conn.Close(context.Background()))
	assert.True(t, conn.Driver().(*fakeDriver).closed)

	conn, err = m.Make("b")
	require.NoError(t, err)
	assert.Equal(t, "Y", conn.DriverName())

	_, err = m.Make("c")
	assert.True(t, errors.IsType(err, errors.ErrorTypeConnectionNotFound))
}

func TestMakeDriverFailures(t *testing.T) {
	r := testRegistry(t)
	boom := stderrors.New("bad port")
	require.NoError(t, r.Register("broken", func(map[string]interface{}) (driver.Driver, error) {
		return nil, boom
	}))

	m := NewManager(r)
	m.Reset(map[string]interface{}{
		"unknown": map[string]interface{}{"driver": "nope"},
		"nodrv":   map[string]interface{}{"hostname": "x"},
		"broken":  map[string]interface{}{"driver": "broken"},
	})

	_, err := m.Make("unknown")
	assert.True(t, errors.IsType(err, errors.ErrorTypeConnectionNotFound))
	assert.True(t, stderrors.Is(err, driver.ErrUnknownDriver))

	_, err = m.Make("nodrv")
	assert.True(t, errors.IsType(err, errors.ErrorTypeConnectionNotFound))

	_, err = m.Make("broken")
	assert.Same(t, boom, err)
}

func TestAllKeepsDefault(t *testing.T) {
	m := NewManager(testRegistry(t))
	m.Reset(manifest())

	all := m.All()
	assert.Equal(t, manifest(), all)

	all["default"] = "b"
	def, err := m.Fetch("")
	require.NoError(t, err)
	assert.Equal(t, "X", def.Driver())

	assert.Equal(t, []string{"a", "b", "cache"}, m.Aliases())
	assert.NotNil(t, m.Drivers())
}

func TestResolve(t *testing.T) {
	m := NewManager(nil)
	m.Reset(manifest())

	alias, err := m.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "a", alias)

	alias, err = m.Resolve("anything")
	require.NoError(t, err)
	assert.Equal(t, "anything", alias)
	assert.Same(t, driver.GetRegistry(), m.Drivers())
}
