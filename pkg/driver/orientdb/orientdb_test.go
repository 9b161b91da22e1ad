package orientdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spidergraph/spider/pkg/driver"
)

func TestNew(t *testing.T) {
	d, err := New(map[string]interface{}{
		"driver":   Name,
		"hostname": "10.0.0.5",
		"port":     "2480",
		"username": "root",
		"database": "modern_graph",
	})
	require.NoError(t, err)

	od := d.(*Driver)
	assert.Equal(t, "10.0.0.5:2480", od.Address())
	assert.Equal(t, "modern_graph", od.Database())
	assert.Equal(t, "root", od.Username())
	assert.NoError(t, od.Close(context.Background()))
}

func TestDefaults(t *testing.T) {
	d, err := driver.Create("orient", map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, Name, d.Name())
	assert.Equal(t, "localhost:2424", d.(*Driver).Address())
}
