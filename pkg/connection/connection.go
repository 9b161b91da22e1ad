package connection

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spidergraph/spider/pkg/driver"
	"github.com/spidergraph/spider/pkg/errors"
	"github.com/spidergraph/spider/pkg/metrics"
)

// Connection is a definition bound to a constructed driver.
type Connection struct {
	id         string
	alias      string
	definition Definition
	driver     driver.Driver
}

// Open builds a connection for alias from def using drivers. A missing or
// unregistered driver identifier yields an ErrorTypeConnectionNotFound
// error; an error from the driver factory itself is returned unmodified.
func Open(alias string, def Definition, drivers *driver.Registry) (*Connection, error) {
	name := def.Driver()
	if name == "" {
		return nil, errors.New(errors.ErrorTypeConnectionNotFound,
			fmt.Sprintf("connection %s does not name a driver", alias)).
			WithDetail("alias", alias)
	}

	if drivers == nil {
		drivers = driver.GetRegistry()
	}

	d, err := drivers.Create(name, map[string]interface{}(def))
	if err != nil {
		if stderrors.Is(err, driver.ErrUnknownDriver) {
			return nil, errors.Wrap(err, errors.ErrorTypeConnectionNotFound,
				fmt.Sprintf("connection %s uses an unknown driver", alias)).
				WithDetail("alias", alias).
				WithDetail("driver", name)
		}
		return nil, err
	}

	metrics.ConnectionsOpened.WithLabelValues(d.Name()).Inc()

	return &Connection{
		id:         uuid.NewString(),
		alias:      alias,
		definition: def,
		driver:     d,
	}, nil
}

// ID identifies this connection in logs.
func (c *Connection) ID() string { return c.id }

// Alias returns the manifest alias the connection was built from.
func (c *Connection) Alias() string { return c.alias }

// Definition returns the definition the connection was built from.
func (c *Connection) Definition() Definition { return c.definition }

// Driver returns the constructed driver.
func (c *Connection) Driver() driver.Driver { return c.driver }

// DriverName returns the name the driver registered under.
func (c *Connection) DriverName() string { return c.driver.Name() }

// Close releases the driver.
func (c *Connection) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}
