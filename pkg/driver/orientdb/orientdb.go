// Package orientdb provides the OrientDB driver definition. It resolves the
// binary-protocol endpoint and credentials from a connection definition;
// speaking the protocol is left to the query layer.
package orientdb

import (
	"context"
	"net"
	"strconv"

	"github.com/spidergraph/spider/pkg/driver"
)

// Name is the identifier this driver registers under.
const Name = "orientdb"

const (
	defaultHost = "localhost"
	defaultPort = 2424
)

// Driver holds a resolved OrientDB endpoint.
type Driver struct {
	host     string
	port     int
	database string
	username string
	password string
}

// New builds a Driver from `hostname`, `port`, `database`, `username` and
// `password`.
func New(definition map[string]interface{}) (driver.Driver, error) {
	return &Driver{
		host:     driver.String(definition, "hostname", defaultHost),
		port:     driver.Int(definition, "port", defaultPort),
		database: driver.String(definition, "database", ""),
		username: driver.String(definition, "username", ""),
		password: driver.String(definition, "password", ""),
	}, nil
}

// Name implements driver.Driver.
func (d *Driver) Name() string { return Name }

// Address returns host:port of the binary endpoint.
func (d *Driver) Address() string {
	return net.JoinHostPort(d.host, strconv.Itoa(d.port))
}

// Database returns the database name.
func (d *Driver) Database() string { return d.database }

// Username returns the configured user.
func (d *Driver) Username() string { return d.username }

// Close implements driver.Driver. Nothing is held open.
func (d *Driver) Close(context.Context) error { return nil }
