// Package neo4j adapts the official Neo4j Go driver to Spider's driver
// contract.
package neo4j

import (
	"context"
	"fmt"
	"time"

	bolt "github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.opentelemetry.io/otel/attribute"

	"github.com/spidergraph/spider/pkg/driver"
	"github.com/spidergraph/spider/pkg/observability"
)

// Name is the identifier this driver registers under.
const Name = "neo4j"

const (
	defaultScheme = "neo4j"
	defaultHost   = "localhost"
	defaultPort   = 7687
)

const tracerName = "github.com/spidergraph/spider/pkg/driver/neo4j"

// Driver wraps a bolt driver built from a connection definition.
type Driver struct {
	uri      string
	database string
	username string
	bolt     bolt.DriverWithContext
}

// New builds a Driver. The definition may carry a full `uri`, or a
// `scheme`, `hostname` and `port` triple. Credentials come from `username`
// and `password`. No connection is attempted.
func New(definition map[string]interface{}) (driver.Driver, error) {
	uri := driver.String(definition, "uri", "")
	if uri == "" {
		uri = fmt.Sprintf("%s://%s:%d",
			driver.String(definition, "scheme", defaultScheme),
			driver.String(definition, "hostname", defaultHost),
			driver.Int(definition, "port", defaultPort))
	}

	username := driver.String(definition, "username", "")
	auth := bolt.NoAuth()
	if username != "" {
		auth = bolt.BasicAuth(username, driver.String(definition, "password", ""), "")
	}

	poolSize := driver.Int(definition, "max_connection_pool_size", 0)
	acquireTimeout := driver.Int(definition, "connection_timeout_seconds", 0)

	b, err := bolt.NewDriverWithContext(uri, auth, func(c *bolt.Config) {
		if poolSize > 0 {
			c.MaxConnectionPoolSize = poolSize
		}
		if acquireTimeout > 0 {
			c.ConnectionAcquisitionTimeout = time.Duration(acquireTimeout) * time.Second
		}
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: %w", err)
	}

	return &Driver{
		uri:      uri,
		database: driver.String(definition, "database", ""),
		username: username,
		bolt:     b,
	}, nil
}

// Name implements driver.Driver.
func (d *Driver) Name() string { return Name }

// URI returns the target the driver was built for.
func (d *Driver) URI() string { return d.uri }

// Database returns the configured database, empty for the server default.
func (d *Driver) Database() string { return d.database }

// Bolt exposes the underlying driver to the query layer.
func (d *Driver) Bolt() bolt.DriverWithContext { return d.bolt }

// VerifyConnectivity checks that the server is reachable.
func (d *Driver) VerifyConnectivity(ctx context.Context) (err error) {
	ctx, span := observability.StartSpan(ctx, tracerName, "neo4j.verify_connectivity",
		attribute.String("db.system", "neo4j"),
		attribute.String("server.uri", d.uri),
	)
	defer func() { observability.EndSpan(span, err) }()

	if err := d.bolt.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("neo4j: verify connectivity to %s: %w", d.uri, err)
	}
	return nil
}

// Close implements driver.Driver.
func (d *Driver) Close(ctx context.Context) error {
	if d.bolt == nil {
		return nil
	}
	return d.bolt.Close(ctx)
}
