// Package query is the boundary between Spider and the query layer. A
// Builder owns the connection a Spider instance was configured with and the
// error policy the query layer applies to features the backend lacks.
package query

import (
	"context"

	"go.uber.org/zap"

	"github.com/spidergraph/spider/pkg/connection"
	"github.com/spidergraph/spider/pkg/driver"
	"github.com/spidergraph/spider/pkg/errors"
	"github.com/spidergraph/spider/pkg/logger"
)

// Builder is handed a connection and an error policy at construction.
type Builder struct {
	conn   *connection.Connection
	policy errors.Policy
	logger *zap.Logger
}

// NewBuilder creates a builder over conn.
func NewBuilder(conn *connection.Connection, policy errors.Policy) *Builder {
	return &Builder{
		conn:   conn,
		policy: policy,
		logger: logger.Get().With(
			zap.String("component", "query_builder"),
			zap.String("alias", conn.Alias()),
			zap.String("driver", conn.DriverName())),
	}
}

// Connection returns the connection the builder runs against.
func (b *Builder) Connection() *connection.Connection { return b.conn }

// Driver returns the connection's driver.
func (b *Builder) Driver() driver.Driver { return b.conn.Driver() }

// Policy returns the error policy.
func (b *Builder) Policy() errors.Policy { return b.policy }

// NotSupported reports that the backend cannot serve feature, as the
// policy dictates.
func (b *Builder) NotSupported(feature string) error {
	return b.policy.NotSupportedf(b.logger, "%s is not supported by the %s driver", feature, b.conn.DriverName())
}

// Close closes the underlying connection.
func (b *Builder) Close(ctx context.Context) error {
	return b.conn.Close(ctx)
}
